package harbor

import (
	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
)

// UserResp is a Harbor user account.
type UserResp struct {
	UserID          int64            `json:"user_id"`
	Username        string           `json:"username"`
	Email           string           `json:"email,omitempty"`
	Realname        string           `json:"realname,omitempty"`
	Comment         string           `json:"comment,omitempty"`
	SysadminFlag    bool             `json:"sysadmin_flag,omitempty"`
	AdminRoleInAuth bool             `json:"admin_role_in_auth,omitempty"`
	OIDCUserMeta    *OIDCUserInfo    `json:"oidc_user_meta,omitempty"`
	CreationTime    *strfmt.DateTime `json:"creation_time,omitempty"`
	UpdateTime      *strfmt.DateTime `json:"update_time,omitempty"`
}

// OIDCUserInfo links a user to its OIDC identity.
type OIDCUserInfo struct {
	ID           int64            `json:"id,omitempty"`
	UserID       int64            `json:"user_id,omitempty"`
	Subiss       string           `json:"subiss,omitempty"`
	Secret       string           `json:"secret,omitempty"`
	CreationTime *strfmt.DateTime `json:"creation_time,omitempty"`
	UpdateTime   *strfmt.DateTime `json:"update_time,omitempty"`
}

// UserSearchRespItem is one hit of a username search.
type UserSearchRespItem struct {
	UserID   int64  `json:"user_id,omitempty"`
	Username string `json:"username"`
}

// Permission is an action the current user may take on a resource.
type Permission struct {
	Resource string `json:"resource,omitempty"`
	Action   string `json:"action,omitempty"`
}

var (
	oidcUserInfoSchema = object(nil, props{
		"id":            integer(),
		"user_id":       integer(),
		"subiss":        str(),
		"secret":        str(),
		"creation_time": dateTime(),
		"update_time":   dateTime(),
	})

	userRespSchema = object(required("user_id", "username"), props{
		"user_id":            integer(),
		"username":           str(),
		"email":              str(),
		"realname":           str(),
		"comment":            str(),
		"sysadmin_flag":      boolean(),
		"admin_role_in_auth": boolean(),
		"oidc_user_meta":     oidcUserInfoSchema,
		"creation_time":      dateTime(),
		"update_time":        dateTime(),
	})

	userSearchRespItemSchema = object(required("username"), props{
		"user_id":  integer(),
		"username": str(),
	})

	permissionSchema = object(nil, props{
		"resource": str(),
		"action":   str(),
	})
)

// Schema implements Model.
func (*UserResp) Schema() *spec.Schema { return userRespSchema }

// Schema implements Model.
func (*OIDCUserInfo) Schema() *spec.Schema { return oidcUserInfoSchema }

// Schema implements Model.
func (*UserSearchRespItem) Schema() *spec.Schema { return userSearchRespItemSchema }

// Schema implements Model.
func (*Permission) Schema() *spec.Schema { return permissionSchema }
