package model

// ClientIdentity identifies a visitor for the transaction and form
// endpoints, which nest identity under a "client" object instead of
// using client/user/session IDs.
type ClientIdentity struct {
	customID  *string
	numericID *int64
	uuid      *string
	email     *string
}

// NewClientIdentity returns an identity with no fields set.
func NewClientIdentity() *ClientIdentity {
	return &ClientIdentity{}
}

// ClientIdentityFromMap reads "customId", "id", "uuid" and "email".
func ClientIdentityFromMap(data map[string]any) *ClientIdentity {
	c := &ClientIdentity{}
	if s, ok := looseString(data["customId"]); ok {
		c.SetCustomID(s)
	}
	if n, ok := looseInt(data["id"]); ok {
		c.SetNumericID(int64(n))
	}
	if s, ok := looseString(data["uuid"]); ok {
		c.SetUUID(s)
	}
	if s, ok := looseString(data["email"]); ok {
		c.SetEmail(s)
	}
	return c
}

// Map renders the wire form; unset fields are omitted.
func (c *ClientIdentity) Map() map[string]any {
	data := make(map[string]any, 4)
	if c == nil {
		return data
	}
	putString(data, "customId", c.customID)
	if c.numericID != nil {
		data["id"] = *c.numericID
	}
	putString(data, "uuid", c.uuid)
	putString(data, "email", c.email)
	return data
}

// HasIdentifier reports whether at least one field is set.
func (c *ClientIdentity) HasIdentifier() bool {
	if c == nil {
		return false
	}
	return c.customID != nil || c.numericID != nil || c.uuid != nil || c.email != nil
}

// SetCustomID sets the caller-defined visitor ID.
func (c *ClientIdentity) SetCustomID(id string) *ClientIdentity {
	c.customID = &id
	return c
}

// SetNumericID sets the numeric profile ID.
func (c *ClientIdentity) SetNumericID(id int64) *ClientIdentity {
	c.numericID = &id
	return c
}

// SetUUID sets the profile UUID.
func (c *ClientIdentity) SetUUID(uuid string) *ClientIdentity {
	c.uuid = &uuid
	return c
}

// SetEmail sets the email address.
func (c *ClientIdentity) SetEmail(email string) *ClientIdentity {
	c.email = &email
	return c
}

// CustomID returns the custom ID and whether it is set.
func (c *ClientIdentity) CustomID() (string, bool) { return deref(c.customID) }

// NumericID returns the numeric ID and whether it is set.
func (c *ClientIdentity) NumericID() (int64, bool) { return deref(c.numericID) }

// UUID returns the UUID and whether it is set.
func (c *ClientIdentity) UUID() (string, bool) { return deref(c.uuid) }

// Email returns the email and whether it is set.
func (c *ClientIdentity) Email() (string, bool) { return deref(c.email) }
