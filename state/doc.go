// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the storage of builtin contracts.
// It follows the flow as bellow:
//
//	          o
//	          |
//	 [ revertable state ]
//	          |
//	   [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv batch ]
//	          |
//	    [ read cache ]
//	          |
//	     [ kv store ]
//
// Every slot is addressed by (contract address, 32 bytes key). A State is
// short lived: it is created for one operation, reverted or staged, then dropped.
package state
