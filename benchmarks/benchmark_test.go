package benchmarks

import (
	"math/big"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/biggeezerdevelopment/fastnum"
)

var (
	shortFloat = "3.14159"
	longFloat  = "2.2250738585072011e-308"
	manyDigits = "0.1000000000000000055511151231257827021181583404541015625000000001"
	hardFloat  = "2.4703282292062327208828439643411068618252990130716238221279284125033775363510437593264991818081799618989828234772285886546332835517796989819938739800539093906315035659515570226392290858392449105184435931802849936536152500319370457678249219365623669863658480757001585769269903706311928279558551332927834338409351978015531246597263579574622766465272827220056374006485499977096599470454020828166226237857393450736339007967761930577506740176324673600968951340535537458516661134223766678604162159680461914467291840300530057530849048765391711386591646239524912623653881879636239373280423891018672348497668235089863388587925628302755995657524455507255189313690836254779186948667994968324049705821028513185451396213837722826145437693412532098591327667236328125e-324"

	floatList []string

	bigInt10k  = strings.Repeat("1234567890", 1_000)
	bigInt100k = strings.Repeat("1234567890", 10_000)
	bigInt1M   = strings.Repeat("1234567890", 100_000)
)

func init() {
	// A mix of short decimal literals like those found in data files.
	for i := 0; i < 1000; i++ {
		floatList = append(floatList, strconv.FormatFloat(float64(i)*1.0001e-3, 'g', -1, 64))
	}
}

// Benchmark single float conversions
func BenchmarkFloat64Short_Strconv(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = strconv.ParseFloat(shortFloat, 64)
	}
}

func BenchmarkFloat64Short_Fastnum(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = fastnum.ParseFloat64(shortFloat)
	}
}

func BenchmarkFloat64Long_Strconv(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = strconv.ParseFloat(longFloat, 64)
	}
}

func BenchmarkFloat64Long_Fastnum(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = fastnum.ParseFloat64(longFloat)
	}
}

func BenchmarkFloat64ManyDigits_Strconv(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = strconv.ParseFloat(manyDigits, 64)
	}
}

func BenchmarkFloat64ManyDigits_Fastnum(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = fastnum.ParseFloat64(manyDigits)
	}
}

func BenchmarkFloat64Hard_Strconv(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = strconv.ParseFloat(hardFloat, 64)
	}
}

func BenchmarkFloat64Hard_Fastnum(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = fastnum.ParseFloat64(hardFloat)
	}
}

// Benchmark throughput over a list of literals
func BenchmarkFloat64List_Strconv(b *testing.B) {
	b.SetBytes(int64(listBytes()))
	for i := 0; i < b.N; i++ {
		for _, s := range floatList {
			_, _ = strconv.ParseFloat(s, 64)
		}
	}
}

func BenchmarkFloat64List_Fastnum(b *testing.B) {
	b.SetBytes(int64(listBytes()))
	for i := 0; i < b.N; i++ {
		for _, s := range floatList {
			_, _ = fastnum.ParseFloat64(s)
		}
	}
}

func BenchmarkFloat32List_Fastnum(b *testing.B) {
	b.SetBytes(int64(listBytes()))
	for i := 0; i < b.N; i++ {
		for _, s := range floatList {
			_, _ = fastnum.ParseFloat32(s)
		}
	}
}

func BenchmarkFloat64Arabic_Fastnum(b *testing.B) {
	p, err := fastnum.NewParser(fastnum.SymbolsForTag(language.Arabic))
	if err != nil {
		b.Fatal(err)
	}
	text := fastnum.TextOf([]rune("١٢٣٫٤٥٦٧٨٩"))
	for i := 0; i < b.N; i++ {
		_, _ = p.ParseFloat64(text)
	}
}

// Benchmark big integer assembly
func BenchmarkBigInt10k_MathBig(b *testing.B) {
	for i := 0; i < b.N; i++ {
		new(big.Int).SetString(bigInt10k, 10)
	}
}

func BenchmarkBigInt10k_Fastnum(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = fastnum.ParseBigInt(bigInt10k)
	}
}

func BenchmarkBigInt100k_MathBig(b *testing.B) {
	for i := 0; i < b.N; i++ {
		new(big.Int).SetString(bigInt100k, 10)
	}
}

func BenchmarkBigInt100k_Fastnum(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = fastnum.ParseBigInt(bigInt100k)
	}
}

func BenchmarkBigInt1M_Fastnum(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = fastnum.ParseBigInt(bigInt1M)
	}
}

func BenchmarkBigInt1M_FastnumParallel(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = fastnum.ParseBigIntParallel(bigInt1M)
	}
}

func BenchmarkBigDecimal100k_Fastnum(b *testing.B) {
	s := bigInt100k[:50_000] + "." + bigInt100k[50_000:]
	for i := 0; i < b.N; i++ {
		_, _ = fastnum.ParseBigDecimal(s)
	}
}

func listBytes() int {
	n := 0
	for _, s := range floatList {
		n += len(s)
	}
	return n
}
