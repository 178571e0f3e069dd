package common

// ChainID identifies the network a signing domain binds to.
type ChainID int64

const (
	EthereumMainnet ChainID = 1
	Optimism        ChainID = 10
	BSC             ChainID = 56
	Polygon         ChainID = 137
	Base            ChainID = 8453
	ArbitrumOne     ChainID = 42161
)
