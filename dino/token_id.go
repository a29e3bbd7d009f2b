// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dino

import (
	"encoding/binary"
	"strconv"
)

// TokenID identifies a collateral item in the collateral registry.
type TokenID uint64

// Bytes returns the big endian form of the id, usable as a storage mapping key.
func (id TokenID) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b[:]
}

func (id TokenID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
