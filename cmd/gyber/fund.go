// Copyright (C) 2019 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"github.com/spf13/cobra"
)

var (
	fundAdmin   string
	fundAddress string
	fundAmount  uint64
)

func init() {
	fundCmd.Flags().StringVarP(&fundAdmin, "admin", "a", "", "Root administrator authorizing the funding")
	fundCmd.MarkFlagRequired("admin")
	fundCmd.Flags().StringVarP(&fundAddress, "to", "t", "", "Account to credit (omit to fund the withdrawal pool)")
	fundCmd.Flags().Uint64Var(&fundAmount, "amount", 0, "Quantity to add, in smallest asset units")
	fundCmd.MarkFlagRequired("amount")
}

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Fund the withdrawal pool or an account",
	Long:  `Add balance to the pooled assets withdrawals draw from, or to a single account. Requires the root administrator.`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, _ []string) {
		dataDir := ensureFirstDataDir()
		restClient := ensureRestClient(dataDir)

		status, err := restClient.Fund(fundAdmin, fundAddress, fundAmount)
		if err != nil {
			reportErrorf(errorFundFailed, err)
		}
		if status.Address != "" {
			reportInfof("Account %s balance: %d", status.Address, status.Balance)
		}
		reportInfof("Pool balance: %d", status.Pool)
	},
}
