package dialect

import (
	"fmt"
	"strings"
)

// Kind is a built-in Java language level.
type Kind uint8

const (
	KindUnknown Kind = iota
	Java1_0
	Java1_1
	Java1_2
	Java1_3
	Java1_4
	Java5
	Java6
	Java7
	Java8

	kindCount
)

// Default is the language level used when nothing is configured.
const Default = Java1_0

var kindNames = [kindCount]string{
	KindUnknown: "unknown",
	Java1_0:     "java1.0",
	Java1_1:     "java1.1",
	Java1_2:     "java1.2",
	Java1_3:     "java1.3",
	Java1_4:     "java1.4",
	Java5:       "java5",
	Java6:       "java6",
	Java7:       "java7",
	Java8:       "java8",
}

var aliases = map[string]Kind{
	"1.0": Java1_0, "java1": Java1_0, "java1.0": Java1_0,
	"1.1": Java1_1, "java1.1": Java1_1,
	"1.2": Java1_2, "java1.2": Java1_2, "java2": Java1_2,
	"1.3": Java1_3, "java1.3": Java1_3,
	"1.4": Java1_4, "java1.4": Java1_4,
	"5": Java5, "1.5": Java5, "java5": Java5, "java1.5": Java5,
	"6": Java6, "1.6": Java6, "java6": Java6, "java1.6": Java6,
	"7": Java7, "1.7": Java7, "java7": Java7, "java1.7": Java7,
	"8": Java8, "1.8": Java8, "java8": Java8, "java1.8": Java8,
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) GoString() string {
	return fmt.Sprintf("dialect.Kind(%s)", k.String())
}

// ParseKind accepts canonical names and common spellings such as "1.4",
// "java5" or "1.8". Matching is case-insensitive.
func ParseKind(s string) (Kind, bool) {
	k, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// Kinds returns every built-in level, oldest first.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Java1_0; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
