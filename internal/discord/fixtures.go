package discord

// Fixture data for mock mode and tests. Mirrors the demo records the
// dashboard shipped with before the backend exchange existed.

// FixtureUser is the demo identity served in mock mode.
func FixtureUser() *User {
	return &User{
		ID:            "123456789012345678",
		Username:      "ShockwaveUser",
		Discriminator: "1234",
		Avatar:        "",
	}
}

// FixtureGuilds is the demo guild listing served in mock mode. The third
// entry deliberately lacks the Administrator permission so the admin filter
// has something to drop.
func FixtureGuilds() []Guild {
	return []Guild{
		{
			ID:          "111111111111111111",
			Name:        "Gaming Community",
			Icon:        "abcdef1234567890",
			Owner:       false,
			Permissions: PermissionAdministrator,
			MemberCount: 1250,
		},
		{
			ID:          "222222222222222222",
			Name:        "Tech Enthusiasts",
			Icon:        "abcdef1234567890",
			Owner:       true,
			Permissions: PermissionAdministrator,
			MemberCount: 3400,
		},
		{
			ID:          "333333333333333333",
			Name:        "Music Lovers",
			Icon:        "",
			Owner:       false,
			Permissions: 1024, // Send Messages only
			MemberCount: 45,
		},
	}
}
