package cmd

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	bip32 "github.com/tyler-smith/go-bip32"
	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/mirukoto/bento/bjson"
)

var keyMnemonic string

type keyOutput struct {
	Mnemonic              string           `json:"mnemonic,omitempty"`
	PrivateKey            bjson.ByteString `json:"private_key,omitempty"`
	PublicKey             bjson.ByteString `json:"public_key"`
	PublicKeyUncompressed bjson.ByteString `json:"public_key_uncompressed"`
	XOnlyPublicKey        bjson.ByteString `json:"xonly_public_key"`
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Works with public and private keys",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates a new key pair, optionally from a mnemonic",
	RunE: func(cmd *cobra.Command, args []string) error {
		mnemonic := keyMnemonic
		if mnemonic == "" {
			entropy, err := bip39.NewEntropy(256)
			if err != nil {
				return err
			}
			mnemonic, err = bip39.NewMnemonic(entropy)
			if err != nil {
				return err
			}
		}

		seed := bip39.NewSeed(mnemonic, "")
		master, err := bip32.NewMasterKey(seed)
		if err != nil {
			return errors.Wrap(err, "error deriving master key")
		}
		priv, pub := btcec.PrivKeyFromBytes(btcec.S256(), master.Key)

		return printJSON(&keyOutput{
			Mnemonic:              mnemonic,
			PrivateKey:            priv.Serialize(),
			PublicKey:             pub.SerializeCompressed(),
			PublicKeyUncompressed: pub.SerializeUncompressed(),
			XOnlyPublicKey:        pub.SerializeCompressed()[1:],
		})
	},
}

var keyInspectCmd = &cobra.Command{
	Use:   "inspect [pubkey]",
	Short: "Shows the serialization forms of a public key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := argOrStdin(args)
		if err != nil {
			return err
		}
		raw, err := hex.DecodeString(text)
		if err != nil {
			return errors.Wrap(err, "invalid hex key")
		}
		if len(raw) == 32 {
			// x-only keys decode with the even-y prefix.
			raw = append([]byte{0x02}, raw...)
		}
		pub, err := btcec.ParsePubKey(raw, btcec.S256())
		if err != nil {
			return errors.Wrap(err, "invalid public key")
		}

		return printJSON(&keyOutput{
			PublicKey:             pub.SerializeCompressed(),
			PublicKeyUncompressed: pub.SerializeUncompressed(),
			XOnlyPublicKey:        pub.SerializeCompressed()[1:],
		})
	},
}

func init() {
	keyGenerateCmd.Flags().StringVar(&keyMnemonic, "mnemonic", "", "Derives the key from an existing mnemonic")
	keyCmd.AddCommand(keyGenerateCmd)
	keyCmd.AddCommand(keyInspectCmd)
	rootCmd.AddCommand(keyCmd)
}
