package validator

import (
	"github.com/google/uuid"
)

// UUID checks that the value is a UUID string or uuid.UUID.
// The nil UUID is rejected.
func UUID() *Rule {
	return newLeaf("uuid", CheckFunc(checkUUID), nil)
}

// UUIDVersion checks that the value is a UUID of the given version.
func UUIDVersion(version int) *Rule {
	return newLeaf("uuid", CheckFunc(checkUUID), Params{"version": version})
}

func checkUUID(value any, params Params, _ *Context) ([]Failure, error) {
	var (
		id  uuid.UUID
		err error
	)
	switch v := value.(type) {
	case uuid.UUID:
		id = v
	default:
		s, ok := stringValue(value)
		if !ok {
			return Fail("{Property} must be a valid UUID.", nil), nil
		}
		id, err = uuid.Parse(s)
	}
	if err != nil || id == uuid.Nil {
		return Fail("{Property} must be a valid UUID.", nil), nil
	}

	if version, ok := params.Int("version"); ok && id.Version() != uuid.Version(version) {
		return Fail("{Property} must be a version {version} UUID.", map[string]any{"version": version}), nil
	}
	return nil, nil
}
