package docstore

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stored document shapes. Scope is always persisted as an ordered list of
// strings and expirations as millisecond-precision BSON datetimes; the
// split/join and seconds/milliseconds transforms below are the only place
// either convention crosses the protocol boundary. Single-key documents use
// the natural key as _id so the store rejects duplicate inserts.

type codeDocument struct {
	ID          string             `bson:"_id"`
	Code        string             `bson:"code"`
	ClientID    string             `bson:"client_id"`
	UserID      string             `bson:"user_id"`
	RedirectURI string             `bson:"redirect_uri"`
	Expires     primitive.DateTime `bson:"expires"`
	Scope       []string           `bson:"scope,omitempty"`
}

type accessTokenDocument struct {
	ID          string             `bson:"_id"`
	AccessToken string             `bson:"access_token"`
	ClientID    string             `bson:"client_id"`
	UserID      string             `bson:"user_id"`
	Expires     primitive.DateTime `bson:"expires"`
	Scope       []string           `bson:"scope,omitempty"`
}

type refreshTokenDocument struct {
	ID           string             `bson:"_id"`
	RefreshToken string             `bson:"refresh_token"`
	ClientID     string             `bson:"client_id"`
	UserID       string             `bson:"user_id"`
	Expires      primitive.DateTime `bson:"expires"`
	Scope        []string           `bson:"scope,omitempty"`
}

type clientDocument struct {
	ID           string   `bson:"_id"`
	ClientID     string   `bson:"client_id"`
	ClientSecret string   `bson:"client_secret"` // argon2id PHC hash, "" for public clients
	RedirectURI  []string `bson:"redirect_uri,omitempty"`
	GrantTypes   []string `bson:"grant_types,omitempty"`
	UserID       string   `bson:"user_id,omitempty"`
	Scope        []string `bson:"scope,omitempty"`
}

type userDocument struct {
	ID       string   `bson:"_id"`
	Username string   `bson:"username"`
	Password string   `bson:"password"` // argon2id PHC hash
	Scope    []string `bson:"scope,omitempty"`
}

type jwtKeyDocument struct {
	ClientID  string `bson:"client_id"`
	Subject   string `bson:"subject"`
	PublicKey string `bson:"public_key"`
}

type jtiDocument struct {
	ClientID string             `bson:"client_id"`
	Subject  string             `bson:"subject"`
	Audience string             `bson:"audience"`
	Expires  primitive.DateTime `bson:"expires"`
	JTI      string             `bson:"jti"`
}

// joinSpace renders a stored list as the protocol's space-separated string,
// "" for an empty or absent list.
func joinSpace(list []string) string {
	return strings.Join(list, " ")
}

// splitSpace splits a space-separated protocol string into the stored list,
// nil for "".
func splitSpace(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

// toDateTime converts a caller-supplied Unix-seconds expiry to the stored
// millisecond datetime.
func toDateTime(unixSeconds int64) primitive.DateTime {
	return primitive.DateTime(unixSeconds * 1000)
}

// toUnixSeconds truncates a stored millisecond datetime back to whole
// Unix seconds.
func toUnixSeconds(dt primitive.DateTime) int64 {
	return int64(dt) / 1000
}
