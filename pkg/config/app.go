package config

import "time"

var AppVersion = "DEVELOPMENT"

const (
	AppName          = "planttag"
	LogFile          = "planttag.log"
	CfgFile          = "config.toml"
	TableFile        = "rfid_data.json"
	RelayPublishWait = 2 * time.Second
)
