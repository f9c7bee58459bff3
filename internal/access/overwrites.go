// Package access derives per-channel permission overwrites for new ticket
// channels.
package access

import (
	"github.com/rustytiger/tigerbot/internal/platform"
)

// OpenerBundle is the base permission set granted to a ticket's opener:
// view, send, read history, attach files, embed links.
const OpenerBundle = platform.PermViewChannel |
	platform.PermSendMessages |
	platform.PermReadMessageHistory |
	platform.PermAttachFiles |
	platform.PermEmbedLinks

// ComputeOverwrites maps the principals of a new ticket channel to their
// permission bundles. The default role is always denied view; the opener and
// the bot always get at least the opener bundle. supportRole may be nil when
// no support role is configured or the configured role cannot be resolved, in
// which case the ticket stays private between opener and bot.
//
// Pure function: no side effects, no failure modes.
func ComputeOverwrites(opener platform.User, supportRole *platform.Role, bot platform.User, everyoneRoleID string) []platform.Overwrite {
	overwrites := []platform.Overwrite{
		{
			PrincipalID: everyoneRoleID,
			Kind:        platform.PrincipalRole,
			Deny:        platform.PermViewChannel,
		},
		{
			PrincipalID: opener.ID,
			Kind:        platform.PrincipalMember,
			Allow:       OpenerBundle,
		},
		{
			PrincipalID: bot.ID,
			Kind:        platform.PrincipalMember,
			Allow:       OpenerBundle | platform.PermManageChannels,
		},
	}
	if supportRole != nil {
		overwrites = append(overwrites, platform.Overwrite{
			PrincipalID: supportRole.ID,
			Kind:        platform.PrincipalRole,
			Allow:       OpenerBundle | platform.PermManageMessages,
		})
	}
	return overwrites
}
