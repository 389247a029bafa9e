package networks

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenDecimal() uint64

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string
}

type GenericNetworkConfig struct {
	Name               string            `json:"name" validate:"required"`
	AlternativeNames   []string          `json:"alternative_names" validate:"omitempty,dive,required"`
	ChainID            uint64            `json:"chain_id" validate:"required"`
	NativeTokenSymbol  string            `json:"native_token_symbol"`
	NativeTokenDecimal uint64            `json:"native_token_decimal" validate:"lte=36"`
	NodeVariableName   string            `json:"node_variable_name"`
	DefaultNodes       map[string]string `json:"default_nodes" validate:"omitempty,dive,keys,required,endkeys,url"`
}

// GenericNetwork is a network fully described by its config. Built-in and
// custom networks share it.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	config := GenericNetworkConfig{}
	if err := json.Unmarshal(content, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid network config: %w", err)
	}
	if config.NativeTokenSymbol == "" {
		config.NativeTokenSymbol = "ETH"
		config.NativeTokenDecimal = 18
	}
	return NewGenericNetwork(config), nil
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return json.Marshal(gn.config)
}
