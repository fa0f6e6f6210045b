package common

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Common big integers often used
// 常用的大整数
var (
	Big0   = big.NewInt(0)
	Big1   = big.NewInt(1)
	Big2   = big.NewInt(2)
	Big3   = big.NewInt(3)
	Big32  = big.NewInt(32)
	Big256 = big.NewInt(256)
	Big257 = big.NewInt(257)

	U2560 = uint256.NewInt(0)
)
