package srm

import "testing"

// These mirror the concrete scenarios spec.md §8 lists verbatim, pattern,
// input, and expected (start,length) matches converted to the half-open
// [start,end) form FindAllIndex returns.
func TestScenarioCaseInsensitiveLiteral(t *testing.T) {
	re, err := CompileOptions("abc", Options{IgnoreCase: true})
	if err != nil {
		t.Fatal(err)
	}
	got := re.FindAllIndex("xbxabcabxxxxaBCabcxx", -1)
	want := [][]int{{3, 6}, {12, 15}, {15, 18}}
	assertLocs(t, got, want)
}

// bcd|(cc)+|e+ on "cccccbcdeeeee": the loop branch (cc)+ is nullable after
// every pair of c's it consumes, not just the first, so the forward scan
// must keep tracking the latest nullable position (here, after 4 c's, not
// 2) rather than stopping at the first one it sees.
func TestScenarioAlternationWithLoops(t *testing.T) {
	re := MustCompile(`bcd|(cc)+|e+`)
	got := re.FindAllIndex("cccccbcdeeeee", -1)
	want := [][]int{{0, 4}, {5, 8}, {8, 13}}
	assertLocs(t, got, want)
}

func TestScenarioBoundedRepeat(t *testing.T) {
	re := MustCompile(`a{2,4}`)
	got := re.FindAllIndex("..aaaaaaaaaaa..", -1)
	want := [][]int{{2, 6}, {6, 10}, {10, 13}}
	assertLocs(t, got, want)
}

func TestScenarioMultilineBolBoundedRepeat(t *testing.T) {
	re, err := CompileOptions(`^a{2,4}`, Options{Multiline: true})
	if err != nil {
		t.Fatal(err)
	}
	got := re.FindAllIndex("aaaa\nab\naaa\nb\naabb", -1)
	want := [][]int{{0, 4}, {8, 11}, {14, 16}}
	assertLocs(t, got, want)
}

func TestScenarioMultilineEolPlus(t *testing.T) {
	re, err := CompileOptions(`ab+$`, Options{Multiline: true})
	if err != nil {
		t.Fatal(err)
	}
	got := re.FindAllIndex("aaaa\nabbbc\nabbbb\ncccab\naabb", -1)
	want := [][]int{{11, 16}, {20, 22}, {24, 27}}
	assertLocs(t, got, want)
}

func TestScenarioMixedAnchors(t *testing.T) {
	re, err := CompileOptions(`\Aabcd|abc\z|^abc$`, Options{Multiline: true})
	if err != nil {
		t.Fatal(err)
	}
	got := re.FindAllIndex("abcde\nabce\nabc\naabc\nab\nddabc", -1)
	want := [][]int{{0, 4}, {11, 14}, {25, 28}}
	assertLocs(t, got, want)
}

func TestScenarioWordDigitBounded(t *testing.T) {
	re := MustCompile(`^\w\d\w{1,8}$`)
	cases := map[string]bool{
		"a0d":         true,
		"a0":          false,
		"a3abcdefgh":  true,
		"a3abcdefghi": false,
	}
	for s, want := range cases {
		if got := re.Match(s); got != want {
			t.Errorf("Match(%q) = %v, want %v", s, got, want)
		}
	}
}

// (ab|x|ba){1,20000}: every alternative is 1-2 characters wide, so the loop
// re-nullifies at each repetition boundary; the expected match spans the
// whole input, which only a latest-final-tracking forward scan reports.
func TestScenarioLargeBoundedLoopMatchesWholeRun(t *testing.T) {
	re := MustCompile(`(ab|x|ba){1,20000}`)
	got := re.Find("abxxxba")
	want := []int{0, 7}
	if got == nil || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Find = %v, want %v", got, want)
	}
}

func assertLocs(t *testing.T, got, want [][]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i][0] != want[i][0] || got[i][1] != want[i][1] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
