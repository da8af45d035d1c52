package users_test

import (
	"encoding/json"
	"testing"

	"github.com/fixoncall/fixoncall-client/users"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    users.RoleType
		wantErr bool
	}{
		{raw: "driver", want: users.RoleDriver},
		{raw: "mechanic", want: users.RoleMechanic},
		{raw: " Admin ", want: users.RoleAdmin},
		{raw: "partner", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := users.ParseRole(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestUnmarshalServerPayload(t *testing.T) {
	payload := `{"id": 42, "email": "jane@example.com", "name": "Jane", "phone": "+254700000000",
		"user_type": "mechanic", "is_verified": false, "rating": 4.5}`

	var u users.User
	require.NoError(t, json.Unmarshal([]byte(payload), &u))
	require.Equal(t, users.User{
		ID:    "42",
		Name:  "Jane",
		Email: "jane@example.com",
		Role:  users.RoleMechanic,
		Phone: "+254700000000",
	}, u)
	require.NoError(t, u.Validate())
}

func TestPersistedFormRoundTrip(t *testing.T) {
	in := users.User{ID: "u-1", Name: "Sam", Email: "sam@example.com", Role: users.RoleDriver, Phone: "0712345678"}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"u-1","name":"Sam","email":"sam@example.com","role":"driver","phone":"0712345678"}`, string(data))

	var out users.User
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func TestUnmarshalRejectsBadID(t *testing.T) {
	var u users.User
	require.Error(t, json.Unmarshal([]byte(`{"id": 1.5, "role": "driver"}`), &u))
	require.Error(t, json.Unmarshal([]byte(`{"id": {"x": 1}, "role": "driver"}`), &u))
}

func TestValidate(t *testing.T) {
	require.Error(t, users.User{Role: users.RoleDriver}.Validate())
	require.Error(t, users.User{ID: "1", Role: "partner"}.Validate())
	require.NoError(t, users.User{ID: "1", Role: users.RoleAdmin}.Validate())
}
