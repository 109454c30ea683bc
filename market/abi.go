// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package market

import (
	"github.com/parsdao/predict/contract"
)

// RawABI is the solidity interface served by Run.
const RawABI = `[
  {"type":"function","name":"createMarket","stateMutability":"nonpayable",
   "inputs":[{"name":"initialLiquidity","type":"uint128"},{"name":"yesPercentage","type":"uint128"},{"name":"feeNumerator","type":"uint128"},{"name":"title","type":"string"}],
   "outputs":[{"name":"marketId","type":"uint128"}]},
  {"type":"function","name":"addLiquidity","stateMutability":"nonpayable",
   "inputs":[{"name":"marketId","type":"uint128"},{"name":"stxAmount","type":"uint128"}],
   "outputs":[{"name":"lpTokens","type":"uint128"}]},
  {"type":"function","name":"removeLiquidity","stateMutability":"nonpayable",
   "inputs":[{"name":"marketId","type":"uint128"},{"name":"lpTokens","type":"uint128"}],
   "outputs":[{"name":"lpTokensRemoved","type":"uint128"},{"name":"stxReturned","type":"uint128"},{"name":"yesAmount","type":"uint128"},{"name":"noAmount","type":"uint128"}]},
  {"type":"function","name":"swapStxToYes","stateMutability":"nonpayable",
   "inputs":[{"name":"marketId","type":"uint128"},{"name":"stxAmount","type":"uint128"}],
   "outputs":[{"name":"yesAmount","type":"uint128"}]},
  {"type":"function","name":"swapStxToNo","stateMutability":"nonpayable",
   "inputs":[{"name":"marketId","type":"uint128"},{"name":"stxAmount","type":"uint128"}],
   "outputs":[{"name":"noAmount","type":"uint128"}]},
  {"type":"function","name":"swapYesToStx","stateMutability":"nonpayable",
   "inputs":[{"name":"marketId","type":"uint128"},{"name":"yesAmount","type":"uint128"}],
   "outputs":[{"name":"stxAmount","type":"uint128"}]},
  {"type":"function","name":"swapNoToStx","stateMutability":"nonpayable",
   "inputs":[{"name":"marketId","type":"uint128"},{"name":"noAmount","type":"uint128"}],
   "outputs":[{"name":"stxAmount","type":"uint128"}]},
  {"type":"function","name":"resolveMarket","stateMutability":"nonpayable",
   "inputs":[{"name":"marketId","type":"uint128"},{"name":"outcome","type":"bool"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"claimWinnings","stateMutability":"nonpayable",
   "inputs":[{"name":"marketId","type":"uint128"}],
   "outputs":[{"name":"payout","type":"uint128"}]},
  {"type":"function","name":"claimFees","stateMutability":"nonpayable",
   "inputs":[{"name":"marketId","type":"uint128"}],
   "outputs":[{"name":"amount","type":"uint128"}]},
  {"type":"function","name":"togglePause","stateMutability":"nonpayable",
   "inputs":[],
   "outputs":[{"name":"paused","type":"bool"}]},
  {"type":"function","name":"getMarket","stateMutability":"view",
   "inputs":[{"name":"marketId","type":"uint128"}],
   "outputs":[{"name":"yesPool","type":"uint128"},{"name":"noPool","type":"uint128"},{"name":"totalLpTokens","type":"uint128"},{"name":"lpSupply","type":"uint128"},{"name":"feeNumerator","type":"uint128"},{"name":"feesCollected","type":"uint128"},{"name":"resolved","type":"bool"},{"name":"outcomeSet","type":"bool"},{"name":"outcome","type":"bool"},{"name":"creator","type":"address"},{"name":"title","type":"string"}]},
  {"type":"function","name":"getMarketDetails","stateMutability":"view",
   "inputs":[{"name":"marketId","type":"uint128"}],
   "outputs":[{"name":"yesPool","type":"uint128"},{"name":"noPool","type":"uint128"},{"name":"totalLiquidity","type":"uint128"},{"name":"totalLpTokens","type":"uint128"},{"name":"k","type":"uint128"},{"name":"feeNumerator","type":"uint128"},{"name":"resolved","type":"bool"},{"name":"outcomeSet","type":"bool"},{"name":"outcome","type":"bool"}]},
  {"type":"function","name":"getTitle","stateMutability":"view",
   "inputs":[{"name":"marketId","type":"uint128"}],
   "outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"getTotalMarkets","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"","type":"uint128"}]},
  {"type":"function","name":"getUserPosition","stateMutability":"view",
   "inputs":[{"name":"marketId","type":"uint128"},{"name":"user","type":"address"}],
   "outputs":[{"name":"yes","type":"uint128"},{"name":"no","type":"uint128"}]},
  {"type":"function","name":"getUserLp","stateMutability":"view",
   "inputs":[{"name":"marketId","type":"uint128"},{"name":"user","type":"address"}],
   "outputs":[{"name":"","type":"uint128"}]},
  {"type":"function","name":"getLpPositionInfo","stateMutability":"view",
   "inputs":[{"name":"marketId","type":"uint128"},{"name":"user","type":"address"}],
   "outputs":[{"name":"userLpTokens","type":"uint128"},{"name":"totalLpTokens","type":"uint128"},{"name":"totalLiquidity","type":"uint128"},{"name":"lpSupply","type":"uint128"},{"name":"lpTokenValue","type":"uint128"},{"name":"positionValue","type":"uint128"}]},
  {"type":"function","name":"marketExists","stateMutability":"view",
   "inputs":[{"name":"marketId","type":"uint128"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"isMarketResolved","stateMutability":"view",
   "inputs":[{"name":"marketId","type":"uint128"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"calculateK","stateMutability":"view",
   "inputs":[{"name":"marketId","type":"uint128"}],
   "outputs":[{"name":"","type":"uint128"}]},
  {"type":"function","name":"getContractBalance","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getIsPaused","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"getOwner","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"","type":"address"}]},

  {"type":"event","name":"MarketCreated","anonymous":false,"inputs":[
    {"name":"marketId","type":"uint128","indexed":true},{"name":"creator","type":"address","indexed":true},
    {"name":"title","type":"string","indexed":false},{"name":"initialLiquidity","type":"uint128","indexed":false},
    {"name":"yesPercentage","type":"uint128","indexed":false},{"name":"feeNumerator","type":"uint128","indexed":false}]},
  {"type":"event","name":"SwapToYes","anonymous":false,"inputs":[
    {"name":"marketId","type":"uint128","indexed":true},{"name":"user","type":"address","indexed":true},
    {"name":"stxAmount","type":"uint128","indexed":false},{"name":"yesAmount","type":"uint128","indexed":false},
    {"name":"netBetAmount","type":"uint128","indexed":false}]},
  {"type":"event","name":"SwapToNo","anonymous":false,"inputs":[
    {"name":"marketId","type":"uint128","indexed":true},{"name":"user","type":"address","indexed":true},
    {"name":"stxAmount","type":"uint128","indexed":false},{"name":"noAmount","type":"uint128","indexed":false},
    {"name":"netBetAmount","type":"uint128","indexed":false}]},
  {"type":"event","name":"SwapYesToStx","anonymous":false,"inputs":[
    {"name":"marketId","type":"uint128","indexed":true},{"name":"user","type":"address","indexed":true},
    {"name":"stxAmount","type":"uint128","indexed":false},{"name":"yesAmount","type":"uint128","indexed":false}]},
  {"type":"event","name":"SwapNoToStx","anonymous":false,"inputs":[
    {"name":"marketId","type":"uint128","indexed":true},{"name":"user","type":"address","indexed":true},
    {"name":"stxAmount","type":"uint128","indexed":false},{"name":"noAmount","type":"uint128","indexed":false}]},
  {"type":"event","name":"LiquidityAdded","anonymous":false,"inputs":[
    {"name":"marketId","type":"uint128","indexed":true},{"name":"user","type":"address","indexed":true},
    {"name":"stxAmount","type":"uint128","indexed":false},{"name":"lpTokens","type":"uint128","indexed":false},
    {"name":"yesAmount","type":"uint128","indexed":false},{"name":"noAmount","type":"uint128","indexed":false}]},
  {"type":"event","name":"LiquidityRemoved","anonymous":false,"inputs":[
    {"name":"marketId","type":"uint128","indexed":true},{"name":"user","type":"address","indexed":true},
    {"name":"lpTokens","type":"uint128","indexed":false},{"name":"stxReturned","type":"uint128","indexed":false},
    {"name":"yesAmount","type":"uint128","indexed":false},{"name":"noAmount","type":"uint128","indexed":false}]},
  {"type":"event","name":"MarketResolved","anonymous":false,"inputs":[
    {"name":"marketId","type":"uint128","indexed":true},{"name":"resolver","type":"address","indexed":true},
    {"name":"outcome","type":"bool","indexed":false}]},
  {"type":"event","name":"WinningsClaimed","anonymous":false,"inputs":[
    {"name":"marketId","type":"uint128","indexed":true},{"name":"user","type":"address","indexed":true},
    {"name":"amount","type":"uint128","indexed":false}]},
  {"type":"event","name":"FeesClaimed","anonymous":false,"inputs":[
    {"name":"marketId","type":"uint128","indexed":true},{"name":"recipient","type":"address","indexed":true},
    {"name":"amount","type":"uint128","indexed":false}]},
  {"type":"event","name":"PauseToggled","anonymous":false,"inputs":[
    {"name":"owner","type":"address","indexed":true},{"name":"paused","type":"bool","indexed":false}]},

  {"type":"error","name":"MarketError","inputs":[{"name":"code","type":"uint256"}]}
]`

// MarketABI is the parsed RawABI.
var MarketABI = contract.ParseABI(RawABI)
