package dh

import (
	"crypto/rand"
	"errors"
	"math/big"
	"testing"
)

func TestExchangeFixedKeys(t *testing.T) {
	// p = 23, g = 5: A = 5^6 = 8, B = 5^15 = 19, s = 2
	params, err := NewParams(big.NewInt(23), big.NewInt(5))
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}

	alice, err := NewParty("alice", params, big.NewInt(6))
	if err != nil {
		t.Fatal(err)
	}
	bob, err := NewParty("bob", params, big.NewInt(15))
	if err != nil {
		t.Fatal(err)
	}

	if alice.PublicKey().Int64() != 8 || bob.PublicKey().Int64() != 19 {
		t.Fatalf("public keys %v, %v", alice.PublicKey(), bob.PublicKey())
	}

	sa, err := alice.SharedSecret(bob.PublicKey())
	if err != nil {
		t.Fatal(err)
	}
	sb, err := bob.SharedSecret(alice.PublicKey())
	if err != nil {
		t.Fatal(err)
	}
	if sa.Int64() != 2 || sb.Int64() != 2 {
		t.Fatalf("shared secrets %v, %v; want 2", sa, sb)
	}
}

func TestGeneratedExchange(t *testing.T) {
	params, err := GenerateParams(rand.Reader, 128)
	if err != nil {
		t.Fatalf("GenerateParams: %v", err)
	}
	if !params.P.ProbablyPrime(20) {
		t.Fatal("p is not prime")
	}

	alice, err := NewParty("alice", params, nil)
	if err != nil {
		t.Fatal(err)
	}
	bob, err := NewParty("bob", params, nil)
	if err != nil {
		t.Fatal(err)
	}

	sa, err := alice.SharedSecret(bob.PublicKey())
	if err != nil {
		t.Fatal(err)
	}
	sb, err := bob.SharedSecret(alice.PublicKey())
	if err != nil {
		t.Fatal(err)
	}
	if sa.Cmp(sb) != 0 {
		t.Fatal("shared secrets differ")
	}
}

func TestValidation(t *testing.T) {
	for _, pg := range [][2]int64{{3, 2}, {23, 1}, {23, 22}, {23, 30}} {
		if _, err := NewParams(big.NewInt(pg[0]), big.NewInt(pg[1])); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("NewParams(%d, %d) error = %v", pg[0], pg[1], err)
		}
	}

	params, _ := NewParams(big.NewInt(23), big.NewInt(5))
	for _, x := range []int64{0, -4, 23, 40} {
		if _, err := NewParty("x", params, big.NewInt(x)); !errors.Is(err, ErrInvalidPrivate) {
			t.Errorf("NewParty(private=%d) error = %v", x, err)
		}
	}

	party, _ := NewParty("x", params, big.NewInt(3))
	for _, y := range []int64{0, 1, 22, 23} {
		if _, err := party.SharedSecret(big.NewInt(y)); !errors.Is(err, ErrInvalidPublicKey) {
			t.Errorf("SharedSecret(%d) error = %v", y, err)
		}
	}

	if _, err := GenerateParams(rand.Reader, 32); err == nil {
		t.Error("GenerateParams accepted 32-bit modulus")
	}
}
