package config

import "errors"

var (
	errInvalidPollInterval = errors.New("invalid poll interval")
	errMissingTokenFeed    = errors.New("missing token feed")
	errMissingNativeFeed   = errors.New("missing native asset feed")
	errMissingRPCURL       = errors.New("missing RPC URL")
	errInvalidInitialPrice = errors.New("invalid initial price")
)
