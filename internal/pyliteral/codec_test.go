package pyliteral

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Value
	}{
		{"true", "True", BoolValue(true)},
		{"false", "False", BoolValue(false)},
		{"none", "None", NoneValue()},
		{"int", "50", IntValue(50)},
		{"negative int", "-40", IntValue(-40)},
		{"hex int", "0x1F", IntValue(31)},
		{"float", "0.5", FloatValue(0.5)},
		{"exponent", "0e9", FloatValue(0)},
		{"exponent value", "110e9", FloatValue(110e9)},
		{"unit float", "1e-06", FloatValue(1e-06)},
		{"single quoted", "'PEC'", StringValue("PEC")},
		{"double quoted", `"line.gds"`, StringValue("line.gds")},
		{"empty quoted", `""`, StringValue("")},
		{"opaque expression", "[0]", StringValue("[0]")},
		{"trailing comment", "50    # distance in microns", IntValue(50)},
		{"comment on bool", "True  # @brief preview", BoolValue(true)},
		{"hash inside quotes", "'color #1'", StringValue("color #1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.text)
			if !got.Equal(tt.want) {
				t.Errorf("Decode(%q) = %v (%s), want %v (%s)",
					tt.text, got, got.Kind, tt.want, tt.want.Kind)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"true", BoolValue(true), "True"},
		{"false", BoolValue(false), "False"},
		{"none", NoneValue(), "None"},
		{"int", IntValue(401), "401"},
		{"float", FloatValue(0.5), "0.5"},
		{"large float", FloatValue(110e9), "110000000000"},
		{"small float", FloatValue(1e-06), "1e-06"},
		{"string", StringValue("PEC"), "'PEC'"},
		{"string with quote", StringValue("it's"), `'it\'s'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.v); got != tt.want {
				t.Errorf("Encode(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	// Literals in canonical form must survive a full cycle unchanged.
	literals := []string{"True", "False", "None", "50", "-40", "0.5", "401", "'PEC'"}

	for _, lit := range literals {
		if got := Encode(Decode(lit)); got != lit {
			t.Errorf("round trip of %q produced %q", lit, got)
		}
	}
}

func TestStripLineComment(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"50  # microns", "50"},
		{"50", "50"},
		{"'a # b'  # real comment", "'a # b'"},
		{`"x#y"`, `"x#y"`},
		{"  True  ", "True"},
	}

	for _, tt := range tests {
		if got := StripLineComment(tt.expr); got != tt.want {
			t.Errorf("StripLineComment(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestQuotePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"line.gds", `"line.gds"`},
		{`C:\work\line.gds`, `"C:/work/line.gds"`},
		{"", `""`},
	}

	for _, tt := range tests {
		if got := QuotePath(tt.path); got != tt.want {
			t.Errorf("QuotePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		key  string
		v    Value
		want bool
	}{
		{"GdsFile", StringValue("anything"), true},
		{"SubstrateFile", StringValue("stackup"), true},
		{"other", StringValue("line.gds"), true},
		{"other", StringValue("tech.XML"), true},
		{"other", StringValue("PEC"), false},
		{"GdsFile", StringValue(""), false},
		{"GdsFile", IntValue(1), false},
	}

	for _, tt := range tests {
		if got := IsFilePath(tt.key, tt.v); got != tt.want {
			t.Errorf("IsFilePath(%q, %v) = %v, want %v", tt.key, tt.v, got, tt.want)
		}
	}
}

func TestFromInterface(t *testing.T) {
	tests := []struct {
		in   interface{}
		want Value
	}{
		{nil, NoneValue()},
		{true, BoolValue(true)},
		{50, IntValue(50)},
		{int64(50), IntValue(50)},
		{0.5, FloatValue(0.5)},
		{"PEC", StringValue("PEC")},
	}

	for _, tt := range tests {
		if got := FromInterface(tt.in); !got.Equal(tt.want) {
			t.Errorf("FromInterface(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
