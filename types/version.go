package types

// Version is the canonical project version.
// The CLI, the answer event payload and the record frame format share it.
const Version = "0.3.0"

// ContractVersion is stamped on published answer events and record frames.
// It moves in lockstep with Version.
const ContractVersion = Version
