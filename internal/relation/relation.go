// Package relation holds the fixed digit mirror map and the digit-sum family
// tables, and expands pairs and triples into their related closures.
package relation

import (
	"sort"
	"strconv"
	"strings"
)

var mirrorDigits = [10]byte{'5', '6', '7', '8', '9', '0', '1', '2', '3', '4'}

// pairFamilies and tripleFamilies are filled once in init and never written again.
var (
	pairFamilies   [10][]string
	tripleFamilies [10][]string
)

func init() {
	for n := 0; n < 100; n++ {
		v := pad(n, 2)
		k := DigitSum(v)
		pairFamilies[k] = append(pairFamilies[k], v)
	}
	for n := 0; n < 1000; n++ {
		v := pad(n, 3)
		k := DigitSum(v)
		tripleFamilies[k] = append(tripleFamilies[k], v)
	}
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	return strings.Repeat("0", width-len(s)) + s
}

// MirrorDigit maps a digit character through 0↔5, 1↔6, 2↔7, 3↔8, 4↔9
func MirrorDigit(d byte) byte {
	return mirrorDigits[d-'0']
}

// Mirror maps every digit of s through the mirror map
func Mirror(s string) string {
	b := []byte(s)
	for i := range b {
		b[i] = MirrorDigit(b[i])
	}
	return string(b)
}

// Reverse returns s with its digits in reverse order
func Reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// DigitSum returns the sum of the digits of s modulo 10
func DigitSum(s string) int {
	sum := 0
	for i := 0; i < len(s); i++ {
		sum += int(s[i] - '0')
	}
	return sum % 10
}

// Cut mirrors each digit of a triple and sorts the result ascending
func Cut(triple string) string {
	b := []byte(Mirror(triple))
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}

// PairFamily returns the ten pairs whose digit sum mod 10 equals key
func PairFamily(key int) []string {
	return append([]string(nil), pairFamilies[key%10]...)
}

// TripleFamily returns the hundred triples whose digit sum mod 10 equals key
func TripleFamily(key int) []string {
	return append([]string(nil), tripleFamilies[key%10]...)
}

// FamilyOf returns the family key of a pair or triple
func FamilyOf(s string) int {
	return DigitSum(s)
}

// RelatedPairs returns the pair itself, its mirror, its family and the
// mirrors of every family member
func RelatedPairs(pair string) []string {
	set := map[string]struct{}{pair: {}, Mirror(pair): {}}
	for _, member := range pairFamilies[DigitSum(pair)] {
		set[member] = struct{}{}
		set[Mirror(member)] = struct{}{}
	}
	return sortedKeys(set)
}

// RelatedTriples returns the triple, its mirror and cut, and both the family
// of the triple and the family of its mirror image
func RelatedTriples(triple string) []string {
	mirror := Mirror(triple)
	set := map[string]struct{}{triple: {}, mirror: {}, Cut(triple): {}}
	for _, member := range tripleFamilies[DigitSum(triple)] {
		set[member] = struct{}{}
	}
	for _, member := range tripleFamilies[DigitSum(mirror)] {
		set[member] = struct{}{}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
