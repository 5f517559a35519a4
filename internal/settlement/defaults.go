package settlement

import "time"

const (
	defaultPollInterval         = 3 * time.Second
	defaultEscalationInterval   = 30 * time.Second
	defaultGasBumpPercent       = 13
	defaultBaseFeeHeadroom      = 2
	defaultConfirmations        = 2
	defaultMaxBroadcastAttempts = 3
	defaultBroadcastBackoff     = 2 * time.Second

	// gasLimitMarginPercent pads the gas estimate against state drift between
	// estimation and inclusion.
	gasLimitMarginPercent = 20
)
