package accel

import "testing"

func TestIndexByte(t *testing.T) {
	cases := []struct {
		s    string
		c    byte
		want int
	}{
		{"", 'a', -1},
		{"a", 'a', 0},
		{"abcdefgh", 'h', 7},
		{"abcdefghij", 'j', 9},
		{"aaaaaaaaaaaaaaaaab", 'b', 17},
		{"xxxxxxxx", 'y', -1},
	}
	for _, c := range cases {
		if got := IndexByte([]byte(c.s), c.c); got != c.want {
			t.Errorf("IndexByte(%q, %q) = %d, want %d", c.s, c.c, got, c.want)
		}
	}
}

func TestIndexAny2(t *testing.T) {
	cases := []struct {
		s      string
		c1, c2 byte
		want   int
	}{
		{"", 'a', 'b', -1},
		{"xxxxxxxxy", 'y', 'z', 8},
		{"xxxxxxxxz", 'y', 'z', 8},
		{"abcdefgh", 'c', 'f', 2},
		{"nnnnnnnnnn", 'a', 'b', -1},
	}
	for _, c := range cases {
		if got := IndexAny2([]byte(c.s), c.c1, c.c2); got != c.want {
			t.Errorf("IndexAny2(%q, %q, %q) = %d, want %d", c.s, c.c1, c.c2, got, c.want)
		}
	}
}

func TestIndexByteMatchesScalarAcrossChunkBoundaries(t *testing.T) {
	for n := 0; n < 40; n++ {
		s := make([]byte, n)
		for i := range s {
			s[i] = 'x'
		}
		for pos := 0; pos < n; pos++ {
			s[pos] = 'z'
			want := indexByteScalar(s, 'z')
			if got := IndexByte(s, 'z'); got != want {
				t.Fatalf("n=%d pos=%d: IndexByte=%d, scalar=%d", n, pos, got, want)
			}
			s[pos] = 'x'
		}
	}
}
