package utils

import "testing"

func TestParameterize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Cristiano Ronaldo", "cristiano_ronaldo"},
		{"  Kylian   Mbappé ", "kylian_mbappé"},
		{"O'Brien-Smith", "o_brien_smith"},
		{"mbappe", "mbappe"},
		{"", ""},
		{"---", ""},
	}
	for _, c := range cases {
		if got := Parameterize(c.in); got != c.want {
			t.Errorf("Parameterize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Fatal("hash should verify against its own password")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Fatal("hash should reject a different password")
	}
}
