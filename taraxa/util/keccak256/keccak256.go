package keccak256

import (
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

func Hash(bs ...[]byte) (ret common.Hash) {
	hasher := sha3.NewLegacyKeccak256()
	for _, b := range bs {
		hasher.Write(b)
	}
	hasher.Sum(ret[:0])
	return
}
