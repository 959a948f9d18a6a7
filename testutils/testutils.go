package testutils

import (
	"crypto/ecdsa"
	"math/big"
	"math/rand"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/skip-mev/sequencer/profitability"
)

// ChainID is the chain id test transactions are signed for.
var ChainID = big.NewInt(59144)

type Account struct {
	PrivKey *ecdsa.PrivateKey
	Address common.Address
}

func RandomAccounts(r *rand.Rand, n int) []Account {
	accounts := make([]Account, n)

	for i := 0; i < n; i++ {
		key, err := ecdsa.GenerateKey(crypto.S256(), r)
		if err != nil {
			panic(err)
		}

		accounts[i] = Account{
			PrivKey: key,
			Address: crypto.PubkeyToAddress(key.PublicKey),
		}
	}

	return accounts
}

// CreateDynamicFeeTx returns a signed EIP-1559 transaction.
func CreateDynamicFeeTx(account Account, nonce, gas uint64, gasFeeCap, gasTipCap int64, data []byte) (*types.Transaction, error) {
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")

	return signTx(account, &types.DynamicFeeTx{
		ChainID:   ChainID,
		Nonce:     nonce,
		GasTipCap: big.NewInt(gasTipCap),
		GasFeeCap: big.NewInt(gasFeeCap),
		Gas:       gas,
		To:        &to,
		Value:     big.NewInt(1),
		Data:      data,
	})
}

// CreateLegacyTx returns a signed legacy transaction.
func CreateLegacyTx(account Account, nonce, gas uint64, gasPrice int64, data []byte) (*types.Transaction, error) {
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")

	return signTx(account, &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: big.NewInt(gasPrice),
		Gas:      gas,
		To:       &to,
		Value:    big.NewInt(1),
		Data:     data,
	})
}

// CreateHeader returns a header carrying the given pricing data in its extra
// data. baseFee may be nil.
func CreateHeader(number uint64, baseFee *big.Int, pricing profitability.PricingData) *types.Header {
	return &types.Header{
		Number:   new(big.Int).SetUint64(number),
		GasLimit: 30_000_000,
		BaseFee:  baseFee,
		Extra:    profitability.EncodeExtraData(pricing),
	}
}

// RandomData returns n random bytes.
func RandomData(r *rand.Rand, n int) []byte {
	data := make([]byte, n)
	r.Read(data)

	return data
}

func signTx(account Account, inner types.TxData) (*types.Transaction, error) {
	signer := types.LatestSignerForChainID(ChainID)
	return types.SignNewTx(account.PrivKey, signer, inner)
}
