package values

import (
	"errors"
	"testing"
)

func TestEncodeCanonical(t *testing.T) {
	tests := []struct {
		tag  TypeTag
		raw  string
		want string
	}{
		{TagBoolean, "true", "true"},
		{TagBoolean, " FALSE ", "false"},
		{TagBoolean, "1", "true"},
		{TagInteger, "0", "0"},
		{TagInteger, "+5", "5"},
		{TagInteger, "-0", "0"},
		{TagInteger, " 42 ", "42"},
		{TagFloat, "3.14", "3.14"},
		{TagFloat, "2", "2.0"},
		{TagFloat, "-0.0", "0.0"},
		{TagFloat, "1e6", "1e+06"},
		{TagFloat, "0.50", "0.5"},
		{TagString, "hello", `"hello"`},
		{TagString, `"hello"`, `"hello"`},
		{TagString, `"a\tb"`, `"a\tb"`},
		{TagString, "", `""`},
		{TagArray, "[1,2,3]", "[1, 2, 3]"},
		{TagArray, "[ ]", "[]"},
		{TagArray, "[True, FALSE, true]", "[true, false, true]"},
		{TagDict, "{on: TRUE}", `{"on": true}`},
		{TagArray, `[true, "x, y", 2.5, [1 , 2]]`, `[true, "x, y", 2.5, [1, 2]]`},
		{TagDict, `{a: 1, "b c": [1,2]}`, `{"a": 1, "b c": [1, 2]}`},
		{TagDict, "{}", "{}"},
	}
	for _, tt := range tests {
		got, err := Encode(tt.tag, tt.raw)
		if err != nil {
			t.Fatalf("Encode(%s, %q): unexpected error %v", tt.tag, tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("Encode(%s, %q) = %q, want %q", tt.tag, tt.raw, got, tt.want)
		}
	}
}

func TestEncodeIdempotent(t *testing.T) {
	inputs := map[TypeTag][]string{
		TagBoolean: {"true", "0"},
		TagInteger: {"-17", "+3", "9223372036854775807"},
		TagFloat:   {"3.14", "10", "1e-9", "123456789.5"},
		TagString:  {"plain", `"quoted \"inner\""`, "ünïcödé"},
		TagArray:   {"[1, [2, [3]]]", `["a", {k: 1}]`},
		TagDict:    {`{x: true, y: "s"}`},
	}
	for tag, raws := range inputs {
		for _, raw := range raws {
			once, err := Encode(tag, raw)
			if err != nil {
				t.Fatalf("Encode(%s, %q): %v", tag, raw, err)
			}
			twice, err := Encode(tag, once)
			if err != nil {
				t.Fatalf("re-encode(%s, %q): %v", tag, once, err)
			}
			if once != twice {
				t.Errorf("%s: encoding not idempotent: %q then %q", tag, once, twice)
			}
		}
	}
}

func TestEncodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		tag TypeTag
		raw string
	}{
		{TagBoolean, "yes"},
		{TagInteger, "3.5"},
		{TagInteger, ""},
		{TagInteger, "99999999999999999999"},
		{TagFloat, "NaN"},
		{TagFloat, "inf"},
		{TagFloat, "1e400"},
		{TagString, `"unterminated`},
		{TagArray, "1, 2"},
		{TagArray, "[1, 2"},
		{TagArray, "[1,,2]"},
		{TagArray, "[word]"},
		{TagArray, `["open]`},
		{TagArray, "[[1], 2]]"},
		{TagDict, "{a 1}"},
		{TagDict, "{a: 1, a: 2}"},
		{TagDict, "{: 1}"},
		{TypeTag(9), "1"},
	}
	for _, tt := range tests {
		if _, err := Encode(tt.tag, tt.raw); !errors.Is(err, ErrInvalidValueFormat) {
			t.Errorf("Encode(%s, %q) error = %v, want ErrInvalidValueFormat", tt.tag, tt.raw, err)
		}
	}
}

func TestTypeTagNames(t *testing.T) {
	for tag := TagBoolean; tag <= TagDict; tag++ {
		parsed, ok := ParseTypeTag(tag.String())
		if !ok || parsed != tag {
			t.Fatalf("ParseTypeTag(%q) = %v, %v", tag.String(), parsed, ok)
		}
	}
	if got := TypeTag(42).String(); got != "unknown" {
		t.Fatalf("unknown tag string = %q", got)
	}
	if TypeTag(42).Valid() {
		t.Fatalf("tag 42 must not be valid")
	}
	for alias, want := range map[string]TypeTag{"bool": TagBoolean, "INT": TagInteger, "str": TagString} {
		if got, ok := ParseTypeTag(alias); !ok || got != want {
			t.Errorf("ParseTypeTag(%q) = %v, %v; want %v", alias, got, ok, want)
		}
	}
	if _, ok := ParseTypeTag("matrix"); ok {
		t.Fatalf("ParseTypeTag accepted unknown name")
	}
}
