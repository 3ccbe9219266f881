package service

import (
	"sort"

	"github.com/driftpress/internal/db"
	"gorm.io/gorm"
)

// RelatedRef is the read-side shape of a related-content link: the stored
// target id resolved back to its slug and title.
type RelatedRef struct {
	Type       string `json:"type"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	OrderIndex int    `json:"orderIndex"`
}

// RelationSet aggregates every child collection of one parent entity.
// Slices are always non-nil so they marshal as [] rather than null.
type RelationSet struct {
	Gallery      []db.GalleryItem
	Downloads    []db.DownloadItem
	FAQs         []db.FAQItem
	Features     []db.Feature
	Packages     []db.Package
	Problems     []db.ProblemItem
	Solutions    []db.SolutionItem
	Testimonials []db.Testimonial
	Related      []RelatedRef
}

func newRelationSet() *RelationSet {
	return &RelationSet{
		Gallery:      []db.GalleryItem{},
		Downloads:    []db.DownloadItem{},
		FAQs:         []db.FAQItem{},
		Features:     []db.Feature{},
		Packages:     []db.Package{},
		Problems:     []db.ProblemItem{},
		Solutions:    []db.SolutionItem{},
		Testimonials: []db.Testimonial{},
		Related:      []RelatedRef{},
	}
}

// loadRelationSets batch-loads all child collections for the given parents.
// Every collection is fetched in one query per table, keyed back to its
// parent, so list reads stay free of per-row fan-out.
func loadRelationSets(gdb *gorm.DB, parentType string, ids []uint) (map[uint]*RelationSet, error) {
	sets := make(map[uint]*RelationSet, len(ids))
	for _, id := range ids {
		sets[id] = newRelationSet()
	}
	if len(ids) == 0 {
		return sets, nil
	}

	var gallery []db.GalleryItem
	if err := childQuery(gdb, parentType, ids).Find(&gallery).Error; err != nil {
		return nil, err
	}
	for _, item := range gallery {
		sets[item.ParentID].Gallery = append(sets[item.ParentID].Gallery, item)
	}

	var downloads []db.DownloadItem
	if err := childQuery(gdb, parentType, ids).Find(&downloads).Error; err != nil {
		return nil, err
	}
	for _, item := range downloads {
		sets[item.ParentID].Downloads = append(sets[item.ParentID].Downloads, item)
	}

	var faqs []db.FAQItem
	if err := childQuery(gdb, parentType, ids).Find(&faqs).Error; err != nil {
		return nil, err
	}
	for _, item := range faqs {
		sets[item.ParentID].FAQs = append(sets[item.ParentID].FAQs, item)
	}

	var features []db.Feature
	if err := childQuery(gdb, parentType, ids).Find(&features).Error; err != nil {
		return nil, err
	}
	for _, item := range features {
		sets[item.ParentID].Features = append(sets[item.ParentID].Features, item)
	}

	var packages []db.Package
	if err := childQuery(gdb, parentType, ids).Find(&packages).Error; err != nil {
		return nil, err
	}
	for _, item := range packages {
		sets[item.ParentID].Packages = append(sets[item.ParentID].Packages, item)
	}

	var problems []db.ProblemItem
	if err := childQuery(gdb, parentType, ids).Find(&problems).Error; err != nil {
		return nil, err
	}
	for _, item := range problems {
		sets[item.ParentID].Problems = append(sets[item.ParentID].Problems, item)
	}

	var solutions []db.SolutionItem
	if err := childQuery(gdb, parentType, ids).Find(&solutions).Error; err != nil {
		return nil, err
	}
	for _, item := range solutions {
		sets[item.ParentID].Solutions = append(sets[item.ParentID].Solutions, item)
	}

	var testimonials []db.Testimonial
	if err := childQuery(gdb, parentType, ids).Find(&testimonials).Error; err != nil {
		return nil, err
	}
	for _, item := range testimonials {
		sets[item.ParentID].Testimonials = append(sets[item.ParentID].Testimonials, item)
	}

	if err := attachRelatedRefs(gdb, parentType, ids, sets); err != nil {
		return nil, err
	}

	return sets, nil
}

func childQuery(gdb *gorm.DB, parentType string, ids []uint) *gorm.DB {
	return gdb.Where("parent_type = ? AND parent_id IN ?", parentType, ids).
		Order("order_index asc")
}

// attachRelatedRefs resolves stored related links back to slug + title.
// Links whose target has since been deleted are skipped.
func attachRelatedRefs(gdb *gorm.DB, parentType string, ids []uint, sets map[uint]*RelationSet) error {
	var links []db.RelatedLink
	if err := childQuery(gdb, parentType, ids).Find(&links).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	targetIDs := map[string][]uint{}
	for _, link := range links {
		targetIDs[link.TargetType] = append(targetIDs[link.TargetType], link.TargetID)
	}

	type ref struct {
		Slug  string
		Title string
	}
	resolved := map[string]map[uint]ref{}

	for ctype, tids := range targetIDs {
		resolved[ctype] = map[uint]ref{}
		switch ctype {
		case db.TypePost:
			var rows []db.Post
			if err := gdb.Select("id", "slug", "title").Where("id IN ?", tids).Find(&rows).Error; err != nil {
				return err
			}
			for _, row := range rows {
				resolved[ctype][row.ID] = ref{Slug: row.Slug, Title: row.Title}
			}
		case db.TypeProject:
			var rows []db.Project
			if err := gdb.Select("id", "slug", "title").Where("id IN ?", tids).Find(&rows).Error; err != nil {
				return err
			}
			for _, row := range rows {
				resolved[ctype][row.ID] = ref{Slug: row.Slug, Title: row.Title}
			}
		case db.TypeService:
			var rows []db.Service
			if err := gdb.Select("id", "slug", "title").Where("id IN ?", tids).Find(&rows).Error; err != nil {
				return err
			}
			for _, row := range rows {
				resolved[ctype][row.ID] = ref{Slug: row.Slug, Title: row.Title}
			}
		}
	}

	for _, link := range links {
		target, ok := resolved[link.TargetType][link.TargetID]
		if !ok {
			continue
		}
		set := sets[link.ParentID]
		set.Related = append(set.Related, RelatedRef{
			Type:       link.TargetType,
			Slug:       target.Slug,
			Title:      target.Title,
			OrderIndex: link.OrderIndex,
		})
	}

	for _, set := range sets {
		sort.SliceStable(set.Related, func(i, j int) bool {
			return set.Related[i].OrderIndex < set.Related[j].OrderIndex
		})
	}

	return nil
}
