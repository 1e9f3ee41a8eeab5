package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	cmtos "github.com/cometbft/cometbft/libs/os"
	eth_crypto "github.com/ethereum/go-ethereum/crypto"
)

// AccountKey is a member key stored as a hex-encoded secp256k1 private key.
// Its address is the checksummed Ethereum-style address of the public key.
type AccountKey struct {
	privateKey *ecdsa.PrivateKey
}

func GenerateAccountKey() (*AccountKey, error) {
	priv, err := eth_crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &AccountKey{privateKey: priv}, nil
}

func LoadAccountKey(keyFilePath string) (*AccountKey, error) {
	dat, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, err
	}
	priv, err := eth_crypto.HexToECDSA(strings.TrimSpace(string(dat)))
	if err != nil {
		return nil, fmt.Errorf("error reading account key from %v: %w", keyFilePath, err)
	}
	return &AccountKey{privateKey: priv}, nil
}

// LoadOrGenAccountKey loads the key at keyFilePath, generating and saving a
// new one if the file does not exist.
func LoadOrGenAccountKey(keyFilePath string) (k *AccountKey, err error) {
	if cmtos.FileExists(keyFilePath) {
		return LoadAccountKey(keyFilePath)
	}
	k, err = GenerateAccountKey()
	if err != nil {
		return nil, err
	}
	if err = k.Save(keyFilePath); err != nil {
		return nil, err
	}
	return
}

func (k *AccountKey) Save(keyFilePath string) error {
	key := hex.EncodeToString(eth_crypto.FromECDSA(k.privateKey))
	return os.WriteFile(keyFilePath, []byte(key), 0o600)
}

func (k *AccountKey) Address() string {
	return eth_crypto.PubkeyToAddress(k.privateKey.PublicKey).Hex()
}

func (k *AccountKey) PublicKey() []byte {
	return eth_crypto.FromECDSAPub(&k.privateKey.PublicKey)
}
