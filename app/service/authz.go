package service

// requireOwner gates every single-resource read and write. Callers must
// check existence first: a missing resource is reported as not found, never
// as an ownership failure.
func requireOwner(ownerID, principalID uint64) error {
	if ownerID != principalID {
		return ErrUnauthorizedAccess
	}
	return nil
}
