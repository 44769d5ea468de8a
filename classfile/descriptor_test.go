package classfile

import "testing"

func TestFormatFieldDescriptor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"I", "int"},
		{"J", "long"},
		{"Z", "boolean"},
		{"D", "double"},
		{"V", "void"},
		{"Ljava/lang/String;", "java.lang.String"},
		{"[I", "int[]"},
		{"[[Ljava/lang/String;", "java.lang.String[][]"},
		{"[[[B", "byte[][][]"},
		// Unparseable descriptors come back unchanged.
		{"", ""},
		{"Q", "Q"},
		{"Ljava/lang/String", "Ljava/lang/String"},
		{"[[", "[["},
	}
	for _, tc := range cases {
		if got := FormatFieldDescriptor(tc.in); got != tc.want {
			t.Errorf("FormatFieldDescriptor(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatMethodDescriptor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"()V", "void ()"},
		{"(I[J)V", "void (int, long[])"},
		{"([Ljava/lang/String;)V", "void (java.lang.String[])"},
		{"(Ljava/lang/Object;I)Ljava/lang/String;", "java.lang.String (java.lang.Object, int)"},
		{"(BCDFISZ)J", "long (byte, char, double, float, int, short, boolean)"},
		// Unparseable descriptors come back unchanged.
		{"", ""},
		{"I", "I"},
		{"(I", "(I"},
		{"(Q)V", "(Q)V"},
		{"(Ljava/lang/String)V", "(Ljava/lang/String)V"},
	}
	for _, tc := range cases {
		if got := FormatMethodDescriptor(tc.in); got != tc.want {
			t.Errorf("FormatMethodDescriptor(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
