package descriptor

import (
	"github.com/pkg/errors"
)

// Network carries the address-encoding parameters of a bitcoin
// network. Only the prefixes matter here; consensus parameters are out
// of scope.
type Network struct {
	Name         string
	P2PKHVersion byte
	P2SHVersion  byte
	AddressHRP   string
}

var NetworkMain = &Network{
	Name:         "mainnet",
	P2PKHVersion: 0x00,
	P2SHVersion:  0x05,
	AddressHRP:   "bc",
}

var NetworkTest = &Network{
	Name:         "testnet",
	P2PKHVersion: 0x6f,
	P2SHVersion:  0xc4,
	AddressHRP:   "tb",
}

var NetworkRegtest = &Network{
	Name:         "regtest",
	P2PKHVersion: 0x6f,
	P2SHVersion:  0xc4,
	AddressHRP:   "bcrt",
}

var networks = []*Network{NetworkMain, NetworkTest, NetworkRegtest}

func NetworkFromName(name string) (*Network, error) {
	for _, n := range networks {
		if n.Name == name {
			return n, nil
		}
	}
	return nil, errors.Errorf("unknown network %s", name)
}
