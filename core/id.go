//----------------------------------------------------------------------
// This file is part of leatea-routing.
// Copyright (C) 2022 Bernd Fix >Y<
//
// leatea-routing is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// leatea-routing is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package core

import (
	"bytes"
	"encoding/base32"
	"encoding/base64"
	"encoding/binary"

	"github.com/bfix/gospel/crypto/ed25519"
)

//----------------------------------------------------------------------

// PeerID is the stable identity of a Device: the binary representation
// of the public Ed25519 key generated for it at creation.
type PeerID struct {
	data []byte // binary representation (32 bytes)

	pub   *ed25519.PublicKey // Ed25519 pubkey
	tag   uint32             // short identifier
	str32 string             // string representation (base32)
	str64 string             // string representation (base64)
}

// NewPeerID wraps the binary representation of a public key as a PeerID.
func NewPeerID(data []byte) *PeerID {
	p := &PeerID{data: Clone(data)}
	p.init()
	return p
}

// init derives the transient fields from the binary representation.
func (p *PeerID) init() {
	if p == nil {
		return
	}
	p.tag = binary.BigEndian.Uint32(p.data[:4])
	p.str64 = base64.StdEncoding.EncodeToString(p.data)
	p.str32 = base32.StdEncoding.EncodeToString(p.data)[:8]
	if p.pub == nil {
		p.pub = ed25519.NewPublicKeyFromBytes(p.data)
	}
}

// Tag returns a short numeric identifier of the peer.
func (p *PeerID) Tag() uint32 {
	if p == nil {
		return 0
	}
	return p.tag
}

// Key returns a string used for map operations.
func (p *PeerID) Key() string {
	if p == nil {
		return ""
	}
	return p.str64
}

// String returns a human-readable short peer identifier.
func (p *PeerID) String() string {
	if p == nil {
		return "(none)"
	}
	return p.str32
}

// Equal returns true if two peer ids are equal.
func (p *PeerID) Equal(q *PeerID) bool {
	if q == nil && p == nil {
		return true
	}
	if q == nil || p == nil {
		return false
	}
	return bytes.Equal(p.data, q.data)
}

// Bytes returns the binary representation (as a clone).
func (p *PeerID) Bytes() []byte {
	return Clone(p.data)
}

//----------------------------------------------------------------------

// PeerPrivate is the Ed25519 signing key backing a Device's identity.
// It is only ever held by the Device it was created for.
type PeerPrivate struct {
	prv *ed25519.PrivateKey
}

// NewPeerPrivate creates a fresh, random node identity key.
func NewPeerPrivate() *PeerPrivate {
	_, prv := ed25519.NewKeypair()
	return &PeerPrivate{prv: prv}
}

// Public returns the PeerID (public identity) derived from this key.
func (p *PeerPrivate) Public() *PeerID {
	pub := p.prv.Public()
	id := &PeerID{data: pub.Bytes(), pub: pub}
	id.init()
	return id
}
