package harbor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestConstruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		wantFields []string
		check      func(t *testing.T, user *harbor.UserResp)
	}{
		{
			name: "valid payload",
			raw:  `{"user_id":3,"username":"alice","email":"alice@example.com","sysadmin_flag":true}`,
			check: func(t *testing.T, user *harbor.UserResp) {
				t.Helper()
				assert.Equal(t, int64(3), user.UserID)
				assert.Equal(t, "alice", user.Username)
				assert.True(t, user.SysadminFlag)
			},
		},
		{
			name: "unknown members ignored",
			raw:  `{"user_id":3,"username":"alice","favourite_colour":"blue"}`,
			check: func(t *testing.T, user *harbor.UserResp) {
				t.Helper()
				assert.Equal(t, "alice", user.Username)
			},
		},
		{
			name: "null optional member",
			raw:  `{"user_id":3,"username":"alice","email":null,"oidc_user_meta":null}`,
			check: func(t *testing.T, user *harbor.UserResp) {
				t.Helper()
				assert.Empty(t, user.Email)
				assert.Nil(t, user.OIDCUserMeta)
			},
		},
		{
			name: "date-time parsed",
			raw:  `{"user_id":3,"username":"alice","creation_time":"2024-05-01T10:00:00Z"}`,
			check: func(t *testing.T, user *harbor.UserResp) {
				t.Helper()
				require.NotNil(t, user.CreationTime)
				assert.Equal(t, "2024-05-01T10:00:00.000Z", user.CreationTime.String())
			},
		},
		{
			name:       "missing required member",
			raw:        `{"username":"alice"}`,
			wantFields: []string{"user_id"},
		},
		{
			name:       "every offending field reported",
			raw:        `{"email":42}`,
			wantFields: []string{"user_id", "username", "email"},
		},
		{
			name:       "null required member",
			raw:        `{"user_id":null,"username":"alice"}`,
			wantFields: []string{"user_id"},
		},
		{
			name:       "integer given as string",
			raw:        `{"user_id":"3","username":"alice"}`,
			wantFields: []string{"user_id"},
		},
		{
			name:       "malformed date-time",
			raw:        `{"user_id":3,"username":"alice","update_time":"yesterday"}`,
			wantFields: []string{"update_time"},
		},
		{
			name:       "nested object",
			raw:        `{"user_id":3,"username":"alice","oidc_user_meta":{"subiss":7}}`,
			wantFields: []string{"oidc_user_meta.subiss"},
		},
		{
			name:       "empty document",
			raw:        ``,
			wantFields: []string{""},
		},
		{
			name:       "invalid JSON",
			raw:        `{"user_id":`,
			wantFields: []string{""},
		},
		{
			name:       "not an object",
			raw:        `[1,2,3]`,
			wantFields: []string{""},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := harbor.Construct[harbor.UserResp]([]byte(tt.raw))

			if tt.wantFields == nil {
				require.NoError(t, err)
				require.NotNil(t, user)
				tt.check(t, user)

				return
			}

			assert.Nil(t, user)

			var validationErr *harbor.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "UserResp", validationErr.Model)

			for _, field := range tt.wantFields {
				assert.True(t, validationErr.HasField(field), "expected field %q in %v", field, validationErr.Fields)
			}
		})
	}
}

func TestConstruct_NestedArrayPath(t *testing.T) {
	t.Parallel()

	raw := `{"severity":"High","vulnerabilities":[{"id":"CVE-2024-0001"},{"package":"openssl"}]}`

	_, err := harbor.Construct[harbor.HarborVulnerabilityReport]([]byte(raw))

	var validationErr *harbor.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.True(t, validationErr.HasField("vulnerabilities.1.id"))
	assert.False(t, validationErr.HasField("vulnerabilities.0.id"))
}

func TestConstruct_ArrayElementPaths(t *testing.T) {
	t.Parallel()

	raw := `{"vulnerabilities":[{"package":"a"},{"id":"CVE-1"},{"package":"b"}]}`

	_, err := harbor.Construct[harbor.HarborVulnerabilityReport]([]byte(raw))

	var validationErr *harbor.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.True(t, validationErr.HasField("vulnerabilities.0.id"))
	assert.True(t, validationErr.HasField("vulnerabilities.2.id"))
	assert.False(t, validationErr.HasField("vulnerabilities.1.id"))
	assert.False(t, validationErr.HasField("vulnerabilities.id"))
	assert.Len(t, validationErr.Fields, 2)
}

func TestConstructList(t *testing.T) {
	t.Parallel()

	t.Run("valid list", func(t *testing.T) {
		t.Parallel()

		tags, err := harbor.ConstructList[harbor.Tag]([]byte(`[{"name":"latest"},{"name":"v1","immutable":true}]`))
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "latest", tags[0].Name)
		assert.True(t, tags[1].Immutable)
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		tags, err := harbor.ConstructList[harbor.Tag]([]byte(`[]`))
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("element paths are indexed", func(t *testing.T) {
		t.Parallel()

		_, err := harbor.ConstructList[harbor.Tag]([]byte(`[{"name":"latest"},{"id":1},{"name":5}]`))

		var validationErr *harbor.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "[]Tag", validationErr.Model)
		assert.True(t, validationErr.HasField("1.name"))
		assert.True(t, validationErr.HasField("2.name"))
		assert.False(t, validationErr.HasField("0.name"))
	})

	t.Run("not an array", func(t *testing.T) {
		t.Parallel()

		_, err := harbor.ConstructList[harbor.Tag]([]byte(`{"name":"latest"}`))

		var validationErr *harbor.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Error(), "expected a JSON array")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid model", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, harbor.Validate(&harbor.Tag{Name: "latest"}))
	})

	t.Run("nil model", func(t *testing.T) {
		t.Parallel()

		var tag *harbor.Tag

		err := harbor.Validate(tag)

		var validationErr *harbor.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Tag", validationErr.Model)
	})
}
