// Package guidance builds the static education texts the wallet shows
// before risky operations. Pure templated-string builders: no state, no
// I/O, always succeed.
package guidance

import "fmt"

// Response is a rendered guidance text with its display title. Risky,
// AssetCode and Issuer are populated for trustline guidance only.
type Response struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	Risky     bool   `json:"risky,omitempty"`
	AssetCode string `json:"assetCode,omitempty"`
	Issuer    string `json:"issuer,omitempty"`
}

// knownSafePair is a pinned code/issuer pair the trustline check treats as
// recognized.
type knownSafePair struct {
	code   string
	issuer string
	note   string
}

var knownSafePairs = []knownSafePair{
	{
		code:   "USDC",
		issuer: "GBBD47IF6LWK7P7MDEVSCWR7DPUWV3NY3DTQEVFL4NAT4AQH3ZLLFLA5",
		note:   "This appears to be USDC on Stellar testnet, which is a common stablecoin for testing.",
	},
	{
		code:   "USDT",
		issuer: "GCQTGZQQ5G6NE6UHMZPTY5QEQQSHPIHPVAJ2XVPR6AKUOC4ZFVRYZGQR",
		note:   "This appears to be USDT on Stellar testnet, which is a common stablecoin for testing.",
	},
}

// Trustline builds the guidance for adding a trustline. Pairs absent from
// the pinned safe-list are marked risky and get a warning banner.
func Trustline(assetCode, issuer string) Response {
	risky := true
	text := fmt.Sprintf("You are about to add a trustline for %s.\n\n", assetCode)

	for _, pair := range knownSafePairs {
		if pair.code == assetCode && pair.issuer == issuer {
			risky = false
			text += pair.note + "\n\n"
			break
		}
	}
	if risky {
		text += "⚠️ **Warning**: This is not a recognized asset. Adding a trustline means you trust the issuer.\n\n"
	}

	text += "**What is a Trustline?**\n" +
		"A trustline is a relationship between your account and an asset issuer that allows you to hold their tokens.\n\n" +
		"**What happens when you add a trustline?**\n" +
		"1. You indicate that you trust the issuer\n" +
		"2. You can receive and send the asset\n" +
		"3. The trustline uses a small amount of your minimum XLM balance (0.5 XLM)\n\n"

	if risky {
		text += "⚠️ **Safety Recommendation**\n" +
			"Only add trustlines for assets from issuers you trust. Anyone can create any asset on Stellar!"
	}

	return Response{
		Title:     "Guidance for Adding Trustline",
		Text:      text,
		Risky:     risky,
		AssetCode: assetCode,
		Issuer:    issuer,
	}
}

// Swap builds the guidance shown before a path-payment asset swap.
func Swap() Response {
	text := "You are about to perform an asset swap using a Path Payment.\n\n" +
		"**What is Slippage?**\n" +
		"The market price can change between the time you submit the transaction and when it's confirmed. Slippage is this price difference.\n\n" +
		"The **'Minimum Amount to Receive'** field protects you. The transaction will fail if you would receive less than this amount, protecting you from bad price changes.\n\n" +
		"**Path Payment on Stellar**\n" +
		"Your transaction will automatically find the best conversion path through the Stellar Decentralized Exchange. This means you might go through multiple assets to get the best rate.\n\n" +
		"**Testing Assets on Testnet**\n" +
		"For testing, you can use these common assets:\n" +
		"- XLM (native): Use 'native' in the asset field\n" +
		"- USDC: Use 'USDC:GBBD47IF6LWK7P7MDEVSCWR7DPUWV3NY3DTQEVFL4NAT4AQH3ZLLFLA5'\n\n" +
		"**Important Testnet Limitations**\n" +
		"- The testnet DEX often has limited liquidity\n" +
		"- Some asset pairs may not have any liquidity paths available\n" +
		"- Try swapping small amounts (1-10 XLM) for best results\n" +
		"- If swaps fail, try using different assets or amounts\n\n" +
		"Remember to add trustlines for any non-native assets you want to receive!"

	return Response{
		Title: "Guidance for Asset Swaps",
		Text:  text,
	}
}

// SmartWallet builds the guidance shown before using a Soroban smart
// wallet.
func SmartWallet() Response {
	text := "You are about to use a Smart Wallet powered by Soroban smart contracts.\n\n" +
		"**What is a Smart Wallet?**\n" +
		"A Smart Wallet is a programmable wallet controlled by a Soroban smart contract, allowing for advanced transaction logic.\n\n" +
		"**Benefits of Smart Wallets**\n" +
		"1. Enhanced security features like spending limits\n" +
		"2. Time-locked transactions\n" +
		"3. Multi-signature capabilities\n" +
		"4. Custom authorization logic\n\n" +
		"**How It Works**\n" +
		"Your transaction will be sent to a Soroban contract which will verify and execute it according to programmed rules."

	return Response{
		Title: "Smart Wallet Information",
		Text:  text,
	}
}
