package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ABIs of the contracts hook plans and quotes talk to

const erc20ABI = `[
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`

const wethABI = `[
	{"type":"function","name":"deposit","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[{"name":"wad","type":"uint256"}],"outputs":[]}
]`

const gatewayABI = `[
	{"type":"function","name":"deposit","stateMutability":"payable","inputs":[{"name":"token","type":"address"},{"name":"amount","type":"uint256"},{"name":"receiver","type":"address"},{"name":"dstEid","type":"uint32"}],"outputs":[]}
]`

const tokenVaultABI = `[
	{"type":"function","name":"quoteSend","stateMutability":"view","inputs":[
		{"name":"_sendParam","type":"tuple","components":[
			{"name":"dstEid","type":"uint32"},
			{"name":"to","type":"bytes32"},
			{"name":"amountLD","type":"uint256"},
			{"name":"minAmountLD","type":"uint256"},
			{"name":"extraOptions","type":"bytes"},
			{"name":"composeMsg","type":"bytes"},
			{"name":"oftCmd","type":"bytes"}
		]},
		{"name":"_payInLzToken","type":"bool"}
	],"outputs":[
		{"name":"msgFee","type":"tuple","components":[
			{"name":"nativeFee","type":"uint256"},
			{"name":"lzTokenFee","type":"uint256"}
		]}
	]}
]`

const swapRouterABI = `[
	{"type":"function","name":"exactOutputSingle","stateMutability":"payable","inputs":[
		{"name":"params","type":"tuple","components":[
			{"name":"tokenIn","type":"address"},
			{"name":"tokenOut","type":"address"},
			{"name":"fee","type":"uint24"},
			{"name":"recipient","type":"address"},
			{"name":"deadline","type":"uint256"},
			{"name":"amountOut","type":"uint256"},
			{"name":"amountInMaximum","type":"uint256"},
			{"name":"sqrtPriceLimitX96","type":"uint160"}
		]}
	],"outputs":[{"name":"amountIn","type":"uint256"}]}
]`

const quoterABI = `[
	{"type":"function","name":"quoteExactOutputSingle","stateMutability":"nonpayable","inputs":[
		{"name":"tokenIn","type":"address"},
		{"name":"tokenOut","type":"address"},
		{"name":"fee","type":"uint24"},
		{"name":"amountOut","type":"uint256"},
		{"name":"sqrtPriceLimitX96","type":"uint160"}
	],"outputs":[{"name":"amountIn","type":"uint256"}]}
]`

const poolABI = `[
	{"type":"function","name":"token0","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"token1","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"fee","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint24"}]}
]`

const lendingPoolABI = `[
	{"type":"function","name":"supply","stateMutability":"nonpayable","inputs":[{"name":"asset","type":"address"},{"name":"amount","type":"uint256"},{"name":"onBehalfOf","type":"address"},{"name":"referralCode","type":"uint16"}],"outputs":[]}
]`

var (
	ERC20       = mustParse("erc20", erc20ABI)
	WETH        = mustParse("weth", wethABI)
	Gateway     = mustParse("gateway", gatewayABI)
	TokenVault  = mustParse("token vault", tokenVaultABI)
	SwapRouter  = mustParse("swap router", swapRouterABI)
	Quoter      = mustParse("quoter", quoterABI)
	Pool        = mustParse("pool", poolABI)
	LendingPool = mustParse("lending pool", lendingPoolABI)
)

func mustParse(name, definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic("invalid " + name + " ABI: " + err.Error())
	}
	return parsed
}
