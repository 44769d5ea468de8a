package classfile

// Access and property flags (JVMS 4.1, 4.5, 4.6). A few bit positions
// are reused with different meanings depending on what they are set on.
const (
	AccPublic       uint16 = 0x0001
	AccPrivate      uint16 = 0x0002
	AccProtected    uint16 = 0x0004
	AccStatic       uint16 = 0x0008
	AccFinal        uint16 = 0x0010
	AccSuper        uint16 = 0x0020 // classes
	AccSynchronized uint16 = 0x0020 // methods
	AccVolatile     uint16 = 0x0040 // fields
	AccBridge       uint16 = 0x0040 // methods
	AccTransient    uint16 = 0x0080 // fields
	AccVarargs      uint16 = 0x0080 // methods
	AccNative       uint16 = 0x0100
	AccInterface    uint16 = 0x0200
	AccAbstract     uint16 = 0x0400
	AccStrict       uint16 = 0x0800
	AccSynthetic    uint16 = 0x1000
	AccAnnotation   uint16 = 0x2000
	AccEnum         uint16 = 0x4000
)

type flagName struct {
	bit  uint16
	name string
}

var classFlagNames = []flagName{
	{AccPublic, "public"},
	{AccFinal, "final"},
	{AccSuper, "super"},
	{AccInterface, "interface"},
	{AccAbstract, "abstract"},
	{AccSynthetic, "synthetic"},
	{AccAnnotation, "annotation"},
	{AccEnum, "enum"},
}

var fieldFlagNames = []flagName{
	{AccPublic, "public"},
	{AccPrivate, "private"},
	{AccProtected, "protected"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccVolatile, "volatile"},
	{AccTransient, "transient"},
	{AccSynthetic, "synthetic"},
	{AccEnum, "enum"},
}

var methodFlagNames = []flagName{
	{AccPublic, "public"},
	{AccPrivate, "private"},
	{AccProtected, "protected"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccSynchronized, "synchronized"},
	{AccBridge, "bridge"},
	{AccVarargs, "varargs"},
	{AccNative, "native"},
	{AccAbstract, "abstract"},
	{AccStrict, "strictfp"},
	{AccSynthetic, "synthetic"},
}

func translateFlags(flags uint16, table []flagName) []string {
	var out []string
	for _, f := range table {
		if flags&f.bit != 0 {
			out = append(out, f.name)
		}
	}
	return out
}

// ClassFlagNames translates a class access_flags mask into flag names,
// lowest bit first.
func ClassFlagNames(flags uint16) []string { return translateFlags(flags, classFlagNames) }

// FieldFlagNames translates a field access_flags mask into flag names.
func FieldFlagNames(flags uint16) []string { return translateFlags(flags, fieldFlagNames) }

// MethodFlagNames translates a method access_flags mask into flag names.
func MethodFlagNames(flags uint16) []string { return translateFlags(flags, methodFlagNames) }
