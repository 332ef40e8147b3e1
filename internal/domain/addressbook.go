package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Contracts holds the destination network contracts a hook plan talks to
type Contracts struct {
	// Gateway forwards assets to other networks through their token vaults
	Gateway common.Address
	// Multicall is the executor that interprets hook plans after funds land
	Multicall common.Address
	// SwapRouter, Quoter and PoolFactory are the Uniswap v3 deployment
	SwapRouter  common.Address
	Quoter      common.Address
	PoolFactory common.Address
	// PoolInitCodeHash is the init code hash used to derive pool addresses
	PoolInitCodeHash common.Hash
	// LendingPool is the Aave v3 pool proxy
	LendingPool common.Address
}

// AddressBook maps logical assets to per-network contract addresses.
// It is a pure lookup with no state beyond what it is built with.
type AddressBook struct {
	ChainID   uint64
	EID       uint32
	Contracts Contracts

	// WrappedNative is the wrapped native asset used to pay relay fees
	WrappedNative Asset

	// deposit assets in declaration order
	assets []Asset
	// token address -> token vault address
	vaults map[common.Address]common.Address
}

var (
	ArbitrumWETH = Asset{
		ChainID:  ChainIDArbitrum,
		Address:  common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"),
		Decimals: 18,
		Symbol:   "WETH",
		Name:     "Wrapped Ether",
	}
	ArbitrumUSDC = Asset{
		ChainID:  ChainIDArbitrum,
		Address:  common.HexToAddress("0xaf88d065e77c8cC2239327C5EDb3A432268e5831"),
		Decimals: 6,
		Symbol:   "USDC",
		Name:     "USD//C",
	}
	ArbitrumUSDT = Asset{
		ChainID:  ChainIDArbitrum,
		Address:  common.HexToAddress("0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9"),
		Decimals: 6,
		Symbol:   "USDT",
		Name:     "Tether USD",
	}
	BaseUSDC = Asset{
		ChainID:  ChainIDBase,
		Address:  common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"),
		Decimals: 6,
		Symbol:   "USDC",
		Name:     "USD Coin",
	}
)

// NewAddressBook creates an address book for one destination network
func NewAddressBook(chainID uint64, eid uint32, contracts Contracts, wrappedNative Asset) *AddressBook {
	return &AddressBook{
		ChainID:       chainID,
		EID:           eid,
		Contracts:     contracts,
		WrappedNative: wrappedNative,
		vaults:        make(map[common.Address]common.Address),
	}
}

// AddDepositAsset registers a supported deposit asset and the vault that relays it
func (b *AddressBook) AddDepositAsset(asset Asset, vault common.Address) *AddressBook {
	if _, exists := b.vaults[asset.Address]; !exists {
		b.assets = append(b.assets, asset)
	}
	b.vaults[asset.Address] = vault
	return b
}

// DefaultAddressBook returns the Arbitrum One deployment
func DefaultAddressBook() *AddressBook {
	book := NewAddressBook(ChainIDArbitrum, EIDArbitrum, Contracts{
		Gateway:          common.HexToAddress("0x58fDAb34aD58a750A22e5d024293Fe9f77CBe7aC"),
		Multicall:        common.HexToAddress("0xEa749Fd6bA492dbc14c24FE8A3d08769229b896c"),
		SwapRouter:       common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564"),
		Quoter:           common.HexToAddress("0xb27308f9F90D607463bb33eA1BeBb41C27CE5AB6"),
		PoolFactory:      common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
		PoolInitCodeHash: common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54"),
		LendingPool:      common.HexToAddress("0x794a61358D6845594F94dc1DB02A252b5b4814aD"),
	}, ArbitrumWETH)

	book.AddDepositAsset(ArbitrumUSDC, common.HexToAddress("0xF08C77ac7056AD2172C8b688c80Ff8b8D93CB562"))
	book.AddDepositAsset(ArbitrumUSDT, common.HexToAddress("0x0dac12432d034B3fd923709FDC097B84557d0Bb4"))

	return book
}

// DepositAssets returns the supported deposit assets
func (b *AddressBook) DepositAssets() []Asset {
	out := make([]Asset, len(b.assets))
	copy(out, b.assets)
	return out
}

// IsSupported reports whether the asset can be deposited through this book
func (b *AddressBook) IsSupported(asset Asset) bool {
	if asset.ChainID != b.ChainID {
		return false
	}
	_, ok := b.vaults[asset.Address]
	return ok
}

// Vault returns the token vault relaying the asset
func (b *AddressBook) Vault(asset Asset) (common.Address, bool) {
	if asset.ChainID != b.ChainID {
		return common.Address{}, false
	}
	vault, ok := b.vaults[asset.Address]
	return vault, ok
}

// FindAsset resolves a symbol or hex address to a deposit asset
func (b *AddressBook) FindAsset(ref string) (Asset, error) {
	ref = strings.TrimSpace(ref)
	if common.IsHexAddress(ref) {
		addr := common.HexToAddress(ref)
		for _, a := range b.assets {
			if a.Address == addr {
				return a, nil
			}
		}
		return Asset{}, &UnsupportedAssetError{
			Asset:     Asset{ChainID: b.ChainID, Address: addr},
			Supported: b.DepositAssets(),
		}
	}

	for _, a := range b.assets {
		if strings.EqualFold(a.Symbol, ref) {
			return a, nil
		}
	}
	return Asset{}, &UnsupportedAssetError{
		Asset:     Asset{ChainID: b.ChainID, Symbol: ref},
		Supported: b.DepositAssets(),
	}
}

// Symbols lists the symbols of the supported deposit assets
func (b *AddressBook) Symbols() []string {
	symbols := make([]string, 0, len(b.assets))
	for _, a := range b.assets {
		symbols = append(symbols, a.Symbol)
	}
	return symbols
}

func (b *AddressBook) String() string {
	return fmt.Sprintf("address book for chain %d (eid %d)", b.ChainID, b.EID)
}
