// Package access implements the force-subscribe policy check.
package access

import "github.com/rs/zerolog/log"

// Membership statuses that count as subscribed.
const (
	statusMember        = "member"
	statusAdministrator = "administrator"
)

// MemberAPI is the platform call the gate depends on.
type MemberAPI interface {
	MemberStatus(chatID, userID int64) (string, error)
}

// Gate decides whether a user may use the bot. A zero channel id disables
// the check entirely; the owner always passes.
type Gate struct {
	api       MemberAPI
	channelID int64
	ownerID   int64
}

// New creates a Gate for the given force-subscribe channel. channelID 0
// means no channel is configured.
func New(api MemberAPI, channelID, ownerID int64) *Gate {
	return &Gate{api: api, channelID: channelID, ownerID: ownerID}
}

// Enabled reports whether a force-subscribe channel is configured.
func (g *Gate) Enabled() bool {
	return g.channelID != 0
}

// IsAuthorized reports whether the user may proceed. Fails closed on any
// platform error.
func (g *Gate) IsAuthorized(userID int64) bool {
	if g.channelID == 0 {
		return true
	}
	if userID == g.ownerID {
		return true
	}

	status, err := g.api.MemberStatus(g.channelID, userID)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("failed to check channel membership")
		return false
	}

	return status == statusMember || status == statusAdministrator
}
