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
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	memberAddress  string
	maxMembers     uint64
	joinCaller     string
	attachedNative uint64
)

func init() {
	memberCmd.AddCommand(memberListCmd)
	memberCmd.AddCommand(memberShowCmd)

	memberShowCmd.Flags().StringVarP(&memberAddress, "address", "a", "", "Member address")
	memberShowCmd.MarkFlagRequired("address")
	memberListCmd.Flags().Uint64VarP(&maxMembers, "max", "m", 0, "Maximum number of members to list (0 lists all)")

	joinCmd.Flags().StringVarP(&joinCaller, "address", "a", "", "Identity requesting operator privilege")
	joinCmd.MarkFlagRequired("address")
	joinCmd.Flags().Uint64VarP(&attachedNative, "native", "n", 0, "Native-currency amount to attach to the call")
}

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Inspect cooperative members",
	Long:  `Collection of commands to inspect enrolled cooperative members`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		//Fall back
		cmd.HelpFunc()(cmd, args)
	},
}

var memberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List enrolled members",
	Long:  `List every enrolled member with its tier and pending marks`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, _ []string) {
		dataDir := ensureFirstDataDir()
		restClient := ensureRestClient(dataDir)

		list, err := restClient.ListMembers(maxMembers)
		if err != nil {
			reportErrorf(errorMemberList, err)
		}
		for _, m := range list.Members {
			mark := ""
			if m.MarkedUp {
				mark = color.GreenString(" [marked up]")
			}
			if m.MarkedDown {
				mark = color.YellowString(" [marked down]")
			}
			reportInfof("%s\ttier %d%s\t%s", m.Address, m.Tier, mark, m.DisplayName)
		}
		reportInfof("%d of %d members", len(list.Members), list.Total)
	},
}

var memberShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one member record",
	Long:  `Show the full record of one enrolled member`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, _ []string) {
		dataDir := ensureFirstDataDir()
		restClient := ensureRestClient(dataDir)

		m, err := restClient.MemberInformation(memberAddress)
		if err != nil {
			reportErrorf(errorMemberInfo, err)
		}
		reportInfof("Address: %s\nName: %s\nProfile: %s\nTier: %d\nMarked up: %t\nMarked down: %t\nLast withdrawal: %d\nWithdrawals this window: %d",
			m.Address, m.DisplayName, m.ProfileLink, m.Tier, m.MarkedUp, m.MarkedDown, m.LastWithdrawal, m.WindowCount)
	},
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Request operator privilege",
	Long:  `Request operator privilege for an identity, paying the entry fee by token balance or attached native currency`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, _ []string) {
		dataDir := ensureFirstDataDir()
		restClient := ensureRestClient(dataDir)

		resp, err := restClient.Join(joinCaller, attachedNative)
		if err != nil {
			reportErrorf(errorJoinFailed, err)
		}
		reportInfof(infoJoinSucceeded, resp.Address)
	},
}
