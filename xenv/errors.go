// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import "github.com/vechain/dinostake/builtin/reverts"

// ErrCallDepth is returned when contracts call each other too deeply.
var ErrCallDepth = reverts.New("call depth exceeded")
