// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"fmt"

	"github.com/parsdao/predict/contract"
	"github.com/parsdao/predict/modules"
	"github.com/parsdao/predict/precompileconfig"
	"github.com/parsdao/predict/registry"
)

var _ contract.Configurator = (*configurator)(nil)

// ConfigKey is the key used in json config files to specify this precompile config.
const ConfigKey = "predictionMarketConfig"

// ContractAddress is LP-9100.
var ContractAddress = registry.PrecompileAddress(registry.FamilyPrediction, registry.ItemBinaryMarket)

// PredictionMarketPrecompile is the singleton instance
var PredictionMarketPrecompile = NewPredictionMarket(ContractAddress, nil)

// Module is the precompile module
var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      ContractAddress,
	Contract:     PredictionMarketPrecompile,
	Configurator: &configurator{},
}

type configurator struct{}

func init() {
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

func (*configurator) MakeConfig() precompileconfig.Config {
	return DefaultConfig()
}

// Configure initializes market state when the precompile activates.
func (*configurator) Configure(
	chainConfig precompileconfig.ChainConfig,
	cfg precompileconfig.Config,
	state contract.StateDB,
	blockContext contract.ConfigurationBlockContext,
) error {
	config, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("expected config type %T, got %T: %v", &Config{}, cfg, cfg)
	}
	if err := config.Verify(chainConfig); err != nil {
		return err
	}
	return PredictionMarketPrecompile.InitializeWithLimits(state, config.Owner, config.Limits(), config.InitiallyPaused)
}
