package engine

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// maxMetaGroupHops bounds the transitive group expansion. A closure needing
// more hops than this indicates pathological data, not a real product line.
const maxMetaGroupHops = 64

// propagateMetaGroup stamps one shared metaGroupId across the transitive
// closure of objects connected through groupId field bodies. The frontier
// grows as newly found objects contribute their own group ids; the object
// itself is stamped on the first hop since its group ids match.
func (s *Service) propagateMetaGroup(obj *model.Object) error {
	metaGroupID := obj.MetaGroupID
	if metaGroupID == "" {
		metaGroupID = uuid.NewString()
	}

	groupIDs := groupIDBodies(obj)
	if len(groupIDs) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(groupIDs))
	for _, id := range groupIDs {
		seen[id] = struct{}{}
	}

	for hop := 0; ; hop++ {
		if hop >= maxMetaGroupHops {
			s.logger.Warn("meta group expansion stopped",
				zap.String("permlink", obj.AuthorPermlink),
				zap.String("metaGroupId", metaGroupID),
				zap.Int("groupIds", len(groupIDs)),
			)
			return nil
		}

		matches, err := s.objects.ByGroupIDs(groupIDs, metaGroupID)
		if err != nil {
			return fmt.Errorf("find objects by group ids: %w", err)
		}
		if len(matches) == 0 {
			return nil
		}

		permlinks := make([]string, 0, len(matches))
		for i := range matches {
			permlinks = append(permlinks, matches[i].AuthorPermlink)
			for _, id := range groupIDBodies(&matches[i]) {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				groupIDs = append(groupIDs, id)
			}
		}
		if err := s.objects.SetMetaGroupID(permlinks, metaGroupID); err != nil {
			return fmt.Errorf("stamp meta group id: %w", err)
		}
	}
}

func groupIDBodies(obj *model.Object) []string {
	fields := obj.FieldsNamed(model.FieldGroupID)
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, f.Body)
	}
	return ids
}
