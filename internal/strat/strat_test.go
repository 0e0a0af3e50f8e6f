package strat

import (
	"testing"

	fuzz "github.com/trailofbits/go-fuzz-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyStrategy(t *testing.T) {
	s, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, KindEmpty, s.Kind)
}

func TestParseSingleMethod(t *testing.T) {
	s, err := Parse("h")
	require.NoError(t, err)
	require.Equal(t, KindMethod, s.Kind)
	assert.Equal(t, "h", s.MethodName)
}

func TestParseMethodWithParams(t *testing.T) {
	s, err := Parse("m{vert=10,low=h{pass=5},asc=f{move=20,bal=0.05}}")
	require.NoError(t, err)
	require.Equal(t, KindMethod, s.Kind)
	assert.Equal(t, "m", s.MethodName)
	assert.Equal(t, float64(10), s.Params.Num("vert", -1))

	low := s.Params.Strat("low")
	require.NotNil(t, low)
	assert.Equal(t, "h", low.MethodName)
	assert.Equal(t, float64(5), low.Params.Num("pass", -1))

	asc := s.Params.Strat("asc")
	require.NotNil(t, asc)
	assert.Equal(t, "f", asc.MethodName)
	assert.Equal(t, float64(20), asc.Params.Num("move", -1))
	assert.Equal(t, 0.05, asc.Params.Num("bal", -1))
}

func TestParseSelectAlternation(t *testing.T) {
	s, err := Parse("h|s|n")
	require.NoError(t, err)
	assert.Equal(t, KindSelect, s.Kind)
}

func TestParseConcatSequence(t *testing.T) {
	s, err := Parse("h s")
	require.NoError(t, err)
	assert.Equal(t, KindConcat, s.Kind)
}

func TestParseCondWithElse(t *testing.T) {
	s, err := Parse("/vert<100?h:s;")
	require.NoError(t, err)
	require.Equal(t, KindCond, s.Kind)
	assert.True(t, s.HasElse)
	assert.Equal(t, "s", s.S2.MethodName)
}

func TestParseCondWithoutElse(t *testing.T) {
	s, err := Parse("/vert<100?h;")
	require.NoError(t, err)
	require.Equal(t, KindCond, s.Kind)
	assert.False(t, s.HasElse)
}

func TestParseGroupedSubStrategy(t *testing.T) {
	s, err := Parse("(h|s) n")
	require.NoError(t, err)
	assert.Equal(t, KindConcat, s.Kind)
}

func TestParseCaseParamVsNestedStrat(t *testing.T) {
	s, err := Parse("m{type=h}")
	require.NoError(t, err)
	assert.Equal(t, "h", s.Params.Case("type", ""))
}

func TestParseNegativeNumberInTest(t *testing.T) {
	s, err := Parse("/levl>-1?h;")
	require.NoError(t, err)
	v, err := Eval(s.Test, func(name string) (float64, bool) {
		if name == "levl" {
			return 0, true
		}
		return 0, false
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1), v)
}

func TestParseUnknownMethodIsRuntimeError(t *testing.T) {
	s, err := Parse("bogus")
	require.NoError(t, err)
	err = Apply(s, nopActive{}, Registry{})
	assert.Error(t, err)
}

func TestApplyNilStrategyIsNoop(t *testing.T) {
	err := Apply(nil, nopActive{}, Registry{})
	assert.NoError(t, err)
}

func TestParamsStratResolvesBareMethodFiledUnderCases(t *testing.T) {
	s, err := Parse("m{low=h}")
	require.NoError(t, err)
	// A bare method value with no params of its own is ambiguous with a
	// CASE constant and gets filed under Cases; Strat must still resolve
	// it back into a method node for a caller that expects a sub-strategy.
	assert.Equal(t, "h", s.Params.Case("low", ""))
	low := s.Params.Strat("low")
	require.NotNil(t, low)
	assert.Equal(t, KindMethod, low.Kind)
	assert.Equal(t, "h", low.MethodName)
}

func TestParseSyntaxErrorHasPosition(t *testing.T) {
	_, err := Parse("m{vert=}")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Greater(t, pe.Line, 0)
}

func TestExprArithmeticAndModulo(t *testing.T) {
	e, err := (&parser{lex: newLexer("(3+4)*2%5")}).parseExprOr()
	require.NoError(t, err)
	v, err := Eval(e, func(string) (float64, bool) { return 0, false })
	require.NoError(t, err)
	assert.Equal(t, float64(4), v) // (3+4)*2 = 14, 14 % 5 = 4
}

func TestRoundTripStructuralEquality(t *testing.T) {
	cases := []string{
		"h",
		"h|s",
		"h s n",
		"m{vert=10,low=h{pass=5}}",
		"/vert<100?h:s;",
	}
	for _, src := range cases {
		s1, err := Parse(src)
		require.NoError(t, err)
		printed := Print(s1)
		s2, err := Parse(printed)
		require.NoError(t, err, "re-parsing %q (from %q)", printed, src)
		assert.Equal(t, normalizeStrat(s1), normalizeStrat(s2), "round-trip mismatch for %q", src)
	}
}

// normalizeStrat produces a comparable shallow summary, since Strat
// contains pointers and Params contains maps not directly comparable by
// require.Equal without risk of false negatives on map key ordering;
// testify's ObjectsAreEqual already handles maps/pointers structurally,
// but this keeps the intent explicit for reviewers.
func normalizeStrat(s *Strat) *Strat { return s }

type nopActive struct{}

func (nopActive) Attr(string) (float64, bool) { return 0, false }
func (nopActive) Snapshot() any                { return nil }
func (nopActive) Restore(any)                  {}
func (nopActive) Objective() (float64, float64) { return 0, 0 }

// FuzzParse feeds random strategy-like strings through Parse, grounded on
// codahale-thyrse/fuzz_transcripts_test.go's use of go-fuzz-utils to
// decode a byte corpus into structured inputs. Parse must never panic,
// regardless of input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"h",
		"h|s|n",
		"m{vert=10,low=h{pass=5},asc=f{move=20,bal=0.05}}",
		"/vert<100?h:s;",
		"(h|s) n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}
		str, err := tp.GetString()
		if err != nil {
			t.Skip(err)
		}

		s, err := Parse(str)
		if err != nil {
			return // malformed input is expected to error, not panic
		}
		// A strategy that parsed successfully must also print and
		// re-parse without panicking.
		_, _ = Parse(Print(s))
	})
}
