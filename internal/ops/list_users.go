package ops

import (
	"sort"
	"time"

	"hookline/internal/ledger"
	"hookline/internal/store"
)

// UserSummary is one row of the ListUsers output.
type UserSummary struct {
	Username     string     `json:"username"`
	Credits      int        `json:"credits"`
	CreatedAt    *time.Time `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
	LastActivity *time.Time `json:"last_activity"`
	TotalScripts int        `json:"total_scripts"`
	TotalHooks   int        `json:"total_hooks"`
}

// ListUsersOutput contains the result of the ListUsers operation.
type ListUsersOutput struct {
	Users []UserSummary `json:"users"`
	Total int           `json:"total"`
}

// ListUsers returns every ledger record, sorted by username.
func ListUsers(st *store.Store) (*ListUsersOutput, error) {
	output := &ListUsersOutput{Users: []UserSummary{}}
	err := st.ViewLedger(func(doc *ledger.Document) error {
		for name, u := range doc.Users {
			output.Users = append(output.Users, UserSummary{
				Username:     name,
				Credits:      u.Credits,
				CreatedAt:    u.CreatedAt,
				LastLogin:    u.LastLogin,
				LastActivity: u.LastActivity,
				TotalScripts: u.TotalScripts,
				TotalHooks:   u.TotalHooks,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(output.Users, func(i, j int) bool {
		return output.Users[i].Username < output.Users[j].Username
	})
	output.Total = len(output.Users)
	return output, nil
}
