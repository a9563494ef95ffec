/*
Package asset implements fungible, multi currency wallets.

Every address owns a single wallet holding any number of currencies. Coins
can only be moved between wallets, or created by the genesis file and the
CoinMint function. The council ledger receives its revenue into a wallet
and pays out claims using MoveCoins.
*/
package asset
