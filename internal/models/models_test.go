package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDeviceTrialToleratesMalformedTimestamps(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":        "t1",
		"last_seen":  "not-a-timestamp",
		"created_at": int64(1718000000),
	})
	require.NoError(t, err)

	var tr DeviceTrial
	require.NoError(t, bson.Unmarshal(raw, &tr))
	require.Equal(t, "t1", tr.ID)
	require.Nil(t, tr.LastSeen, "string last_seen must decode to nil, not fail")
	require.Nil(t, tr.CreatedAt, "numeric created_at must decode to nil, not fail")
	require.Nil(t, tr.FirstInstallTime)
}

func TestDeviceTrialDecodesValidTimestamps(t *testing.T) {
	seen := time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC)
	installed := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	raw, err := bson.Marshal(bson.M{
		"_id":                "t2",
		"last_seen":          seen,
		"first_install_time": installed,
	})
	require.NoError(t, err)

	var tr DeviceTrial
	require.NoError(t, bson.Unmarshal(raw, &tr))
	require.NotNil(t, tr.LastSeen)
	require.True(t, seen.Equal(*tr.LastSeen))
	require.NotNil(t, tr.FirstInstallTime)
	require.True(t, installed.Equal(*tr.FirstInstallTime))
	require.Nil(t, tr.CreatedAt)
}

func TestUserToleratesMalformedLastLogin(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":               primitive.NewObjectID(),
		"displayName":       "Kim",
		"email":             "kim@example.com",
		"lastLoginProvider": "kakao",
		"lastLogin":         "yesterday",
	})
	require.NoError(t, err)

	var u User
	require.NoError(t, bson.Unmarshal(raw, &u))
	require.NotEmpty(t, u.ID, "ObjectID _id decodes to its hex form")
	require.Equal(t, "Kim", u.DisplayName)
	require.Equal(t, "kim@example.com", u.Email)
	require.Equal(t, "kakao", u.LastLoginProvider)
	require.Nil(t, u.LastLogin, "string lastLogin must decode to nil, not fail")
}

func TestUserDecodesValidLastLogin(t *testing.T) {
	login := time.Date(2025, 6, 10, 18, 45, 0, 0, time.UTC)
	raw, err := bson.Marshal(bson.M{"_id": "u1", "email": "kim@example.com", "lastLogin": login})
	require.NoError(t, err)

	var u User
	require.NoError(t, bson.Unmarshal(raw, &u))
	require.Equal(t, "u1", u.ID)
	require.NotNil(t, u.LastLogin)
	require.True(t, login.Equal(*u.LastLogin))
}
