package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// setFromPatch converts an allow-listed patch struct into a $set
// document. Unset pointer fields are dropped by omitempty. lts is
// always written, so even an empty patch refreshes the record; ts is
// never part of a patch and stays immutable.
func setFromPatch(patch any) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}

	set["lts"] = time.Now().UTC()
	return set, nil
}
