package entity

// CredentialRecord is the login secret for one member, persisted as a JSON
// blob under the member's email in the credential metafield namespace. The
// platform has no native user-auth primitive, so this record is the entire
// credential table.
//
// NeedReset is set when the record is created with an admin-issued initial
// password and cleared by the reset flow.
type CredentialRecord struct {
	Handle         string `json:"handle"`
	HashedPassword string `json:"hashedPassword"`
	NeedReset      bool   `json:"needReset"`
}

// Valid reports whether the record can be used to authenticate. A record
// missing its hash or handle fails closed.
func (c CredentialRecord) Valid() bool {
	return c.Handle != "" && c.HashedPassword != ""
}
