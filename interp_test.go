package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runSession feeds src (one or more lines) through a fresh Interp and
// returns everything written to its output.
func runSession(t *testing.T, src string) string {
	t.Helper()
	var out strings.Builder
	vm := New(WithInput(strings.NewReader(src)), WithOutput(&out))
	require.NoError(t, vm.Run())
	return out.String()
}

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "add and print",
			src:  "2 3 + .\n",
			want: "5\n",
		},
		{
			name: "square via colon-definition",
			src:  ": SQR DUP * ; 12 SQR .\n",
			want: "144\n",
		},
		{
			name: "factorial via DO LOOP",
			src:  ": FACT 1 SWAP 1 + 1 DO I * LOOP ; 20 FACT .\n",
			want: "2432902008176640000\n",
		},
		{
			name: "fibonacci via DO LOOP",
			src:  ": FIB 0 1 ROT 0 DO OVER + SWAP LOOP DROP ; 10 FIB .\n",
			want: "55\n",
		},
		{
			name: "variable store and fetch by literal index",
			src:  "VARIABLE X\n42 0 ! 0 @ .\n",
			want: "42\n",
		},
		{
			name: "variable store and fetch via accessor",
			src:  "VARIABLE X\n42 X ! X @ .\n",
			want: "42\n",
		},
		{
			name: "nested IF ELSE THEN sign test",
			src:  ": SIGN DUP 0 < IF DROP -1 ELSE 0 > IF 1 ELSE 0 THEN THEN ; -7 SIGN . 0 SIGN . 7 SIGN .\n",
			want: "-1\n0\n1\n",
		},
		{
			name: "DO LOOP prints 0..99",
			src:  ": COUNT 100 0 DO I . LOOP ; COUNT\n",
			want: counting(0, 100),
		},
		{
			name: "big integer stress: 2^200 via repeated OVER *",
			src:  ": POW 1 SWAP 0 DO OVER * LOOP SWAP DROP ; 2 200 POW .\n",
			want: "1606938044258990275541962092341162602522202993782792835301376\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out strings.Builder
			vm := New(WithInput(strings.NewReader(c.src)), WithOutput(&out))
			require.NoError(t, vm.Run())
			require.Contains(t, out.String(), c.want)
		})
	}
}

func counting(from, to int) string {
	var b strings.Builder
	for i := from; i < to; i++ {
		b.WriteString(itoa(i))
		b.WriteByte('\n')
	}
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func TestDupDotPrintsSameValueTwice(t *testing.T) {
	out := runSession(t, "7 DUP . .\n")
	require.Equal(t, "7\n7\nStack: \n", out)
}

func TestDupEqualityYieldsOne(t *testing.T) {
	out := runSession(t, "7 DUP = .\n")
	require.Equal(t, "1\nStack: \n", out)
}

func TestRoundTripDecimalFormat(t *testing.T) {
	out := runSession(t, "-123456789012345678901234567890 .\n")
	require.Equal(t, "-123456789012345678901234567890\nStack: \n", out)
}

func TestCommutativeAddition(t *testing.T) {
	out := runSession(t, "3 5 + 5 3 + = .\n")
	require.Equal(t, "1\nStack: \n", out)
}

// TestDoLoopZeroIterationsWhenStartEqualsLimit exercises spec.md §8's
// boundary property directly: DO/LOOP with start == limit must not run
// its body. DO/LOOP only have meaning while compiling, so the loop is
// wrapped in a colon-definition rather than typed at the prompt.
func TestDoLoopZeroIterationsWhenStartEqualsLimit(t *testing.T) {
	out := runSession(t, ": LOOPTEST 5 5 DO I . LOOP ; LOOPTEST .S\n")
	require.Equal(t, "Stack: \nStack: \n", out)
}

func TestPickZeroEqualsDup(t *testing.T) {
	out := runSession(t, "9 0 PICK .S\n")
	require.Equal(t, "Stack: 9 9 \nStack: 9 9 \n", out)
}

func TestShiftByZeroIsIdentity(t *testing.T) {
	out := runSession(t, "-17 0 LSHIFT .\n-17 0 RSHIFT .\n")
	require.Equal(t, "-17\nStack: \n-17\nStack: \n", out)
}

func TestBitNotIsInvolutive(t *testing.T) {
	out := runSession(t, "42 ~ ~ .\n")
	require.Equal(t, "42\nStack: \n", out)
}

func TestDivisionTruncatesTowardZero(t *testing.T) {
	out := runSession(t, "-7 2 / .\n7 -2 / .\n")
	require.Equal(t, "-3\nStack: \n-3\nStack: \n", out)
}

func TestDivisionByZeroSetsErrorAndAbortsLine(t *testing.T) {
	out := runSession(t, "5 0 / . 99 .\n")
	require.Contains(t, out, "Error: Division by zero")
	require.NotContains(t, out, "99")
}

func TestStackUnderflowDoesNotCorruptStack(t *testing.T) {
	out := runSession(t, "DROP\n1 2 3 .S\n")
	require.Contains(t, out, "Error: Stack underflow")
	require.Contains(t, out, "Stack: 1 2 3")
}

func TestUnknownWordReportsAndContinues(t *testing.T) {
	out := runSession(t, "1 2 BOGUS 3 .S\n")
	require.Contains(t, out, "Unknown word: BOGUS")
	require.Contains(t, out, "Stack: 1 2 3")
}

func TestForgetRemovesWordAndLaterLookupFails(t *testing.T) {
	out := runSession(t, ": FOO 1 ; FOO .\nFORGET FOO\nFOO .\n")
	require.Contains(t, out, "1\n")
	require.Contains(t, out, "Unknown word: FOO")
}

func TestRedefinitionIsLateBoundBySlot(t *testing.T) {
	// OLD calls TARGET by the slot TARGET held when OLD was compiled;
	// redefining TARGET changes what OLD runs, since CALL is by index.
	src := ": TARGET 1 ;\n" +
		": OLD TARGET ;\n" +
		": TARGET 2 ;\n" +
		"OLD .\n"
	out := runSession(t, src)
	require.Contains(t, out, "2\n")
}

// TestCaseDispatch exercises the matched and fallback paths of
// CASE/OF/ENDOF/ENDCASE. Per spec.md §4.3, a matching OF consumes both
// the selector and its case label before falling into its clause, while
// the fallback path leaves the selector on the stack for ENDCASE's own
// drop -- so clauses that only need a side effect print directly with
// `."` rather than leave a value for ENDCASE to mismanage.
func TestCaseDispatch(t *testing.T) {
	src := `: NAME CASE 1 OF ." "one" ENDOF 2 OF ." "two" ENDOF ." "other" ENDCASE ;` + "\n" +
		"1 NAME\n2 NAME\n3 NAME\n"
	out := runSession(t, src)
	require.Contains(t, out, "one")
	require.Contains(t, out, "two")
	require.Contains(t, out, "other")
}

func TestBeginWhileRepeat(t *testing.T) {
	src := ": COUNTDOWN BEGIN DUP 0 > WHILE DUP . 1 - REPEAT DROP ;\n3 COUNTDOWN\n"
	out := runSession(t, src)
	// the definition line itself prints an (empty) stack too, since
	// only a LOAD line suppresses the print.
	require.Equal(t, "Stack: \n3\n2\n1\nStack: \n", out)
}

func TestLoadMissingFilePrintsBareDiagnostic(t *testing.T) {
	out := runSession(t, `LOAD "/no/such/file.fs"`+"\n")
	require.Contains(t, out, "Cannot open file: /no/such/file.fs")
	require.NotContains(t, out, "Error:")
}

func TestDotQuotePrintsLiteralText(t *testing.T) {
	out := runSession(t, `." "hello world"`+"\n")
	require.Contains(t, out, "hello world")
}

func TestWordsListsDictionaryNames(t *testing.T) {
	out := runSession(t, ": A 1 ; : B 2 ; WORDS\n")
	require.Contains(t, out, "A B \n")
}

func TestFlushEmptiesStack(t *testing.T) {
	out := runSession(t, "1 2 3 FLUSH .S\n")
	require.Equal(t, "Stack: \nStack: \n", out)
}
