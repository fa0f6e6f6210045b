package common

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddressFromHex(t *testing.T) {
	tests := []struct {
		in    string
		eip55 bool
		err   error
	}{
		{"0xf5745ddac99ee7b70518a9035c00cfd63c490b1d", false, nil},
		{"f5745ddac99ee7b70518a9035c00cfd63c490b1d", false, nil},
		{"0xF5745ddac99ee7b70518A9035c00cfd63c490b1d", false, nil},
		{"0xf5745DDAC99EE7B70518A9035c00cfD63C490B1D", true, nil},
		{"f5745DDAC99EE7B70518A9035c00cfD63C490B1D", true, nil},
		{"0xf5745ddac99ee7b70518a9035c00cfd63c490b1d", true, ErrChecksumMismatch},
		{"0xF5745DDAC99EE7B70518A9035c00cfD63C490B1D", true, ErrChecksumMismatch},
		{"0xf5745DDAC99EE7B70518A9035c00cfD63C490B1d", true, ErrChecksumMismatch},
		{"f5745dDAC99EE7B70518A9035c00cfD63C490B1D", true, ErrChecksumMismatch},
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD", true, ErrChecksumMismatch},
		{"f5745ddac99ee7b70518a9035c00cfd63c490b1d0", false, ErrInvalidHex},
		{"f5745ddac99ee7b70518a9035c00cfd63c490b1", false, ErrInvalidHex},
		{"0xf5745ddac99ee7b70518a9035c00cfd63c490b1d0", false, ErrInvalidHex},
		{"0xf5745ddac99ee7b70518a9035c00cfd63c490bzz", false, ErrInvalidHex},
		{"", false, ErrInvalidHex},
	}
	for _, test := range tests {
		addr, err := NewAddressFromHex(test.in, test.eip55)
		if test.err != nil {
			assert.Truef(t, errors.Is(err, test.err), "%s: got %v, want %v", test.in, err, test.err)
			continue
		}
		require.NoError(t, err, test.in)
		assert.Equal(t, "0xf5745ddac99ee7b70518a9035c00cfd63c490b1d", addr.Lower())
	}
}

func TestAddressFormat(t *testing.T) {
	addr := HexToAddress("0xf5745ddac99ee7b70518a9035c00cfd63c490b1d")
	assert.Equal(t, "0xf5745DDAC99EE7B70518A9035c00cfD63C490B1D", addr.Hex())
	assert.Equal(t, addr.Hex(), addr.Format(true))
	assert.Equal(t, "0xf5745ddac99ee7b70518a9035c00cfd63c490b1d", addr.Format(false))

	// EIP-55 reference vectors
	for _, s := range []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	} {
		a, err := NewAddressFromHex(s, true)
		require.NoError(t, err)
		assert.Equal(t, s, a.Hex())
	}
	assert.True(t, IsHexAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.False(t, IsHexAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1bea"))
}

func TestAddressJSON(t *testing.T) {
	addr := HexToAddress("0x9F2c4Ea0506EeAb4e4Dc634C1e1F4Be71D0d7531")
	enc, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"0x9f2c4ea0506eeab4e4dc634c1e1f4be71d0d7531"`, string(enc))

	var dec Address
	require.NoError(t, json.Unmarshal(enc, &dec))
	assert.Equal(t, addr, dec)
	assert.Error(t, json.Unmarshal([]byte(`"0x1234"`), &dec))
}

func TestHashConversions(t *testing.T) {
	h := BigToHash(big.NewInt(0x1234))
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000001234", h.Hex())
	assert.Equal(t, int64(0x1234), h.Big().Int64())
	assert.Equal(t, h, HexToHash("0x1234"))
	assert.Equal(t, "000000..001234", h.TerminalString())

	long := make([]byte, 40)
	long[39] = 7
	assert.Equal(t, byte(7), BytesToHash(long)[31])
}
