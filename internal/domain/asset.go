package domain

import "sort"

// Asset is a rentable boat or boat+experience pairing owned by the catalog.
type Asset struct {
	ID           int64
	Name         string
	ExperienceID *int64
}

// AssetScope narrows catalog and store queries.
// Both nil means the whole fleet.
type AssetScope struct {
	AssetID      *int64
	ExperienceID *int64
}

// IsSingleAsset reports whether the scope names exactly one asset.
func (s AssetScope) IsSingleAsset() bool {
	return s.AssetID != nil
}

// AssetPool is the candidate set handed to the range resolver.
// An unrestricted pool means "every asset in the catalog"; a restricted
// pool with no ids is empty and resolves to nothing.
type AssetPool struct {
	IDs        []int64
	Restricted bool
}

// AllAssets returns an unrestricted pool.
func AllAssets() AssetPool {
	return AssetPool{}
}

// PoolOf returns a restricted pool of the given ids.
func PoolOf(ids ...int64) AssetPool {
	return AssetPool{IDs: UniqueSorted(ids), Restricted: true}
}

// IsEmpty reports whether the pool is restricted to nothing.
func (p AssetPool) IsEmpty() bool {
	return p.Restricted && len(p.IDs) == 0
}

// Contains reports whether id belongs to a restricted pool.
// Every id belongs to an unrestricted pool.
func (p AssetPool) Contains(id int64) bool {
	if !p.Restricted {
		return true
	}
	for _, v := range p.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// UniqueSorted returns ids sorted ascending without duplicates.
func UniqueSorted(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
