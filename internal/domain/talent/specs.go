package talent

import (
	"sort"
	"strconv"
)

// Spec is one row of the static specialization table.
type Spec struct {
	ID      int    `json:"id"`
	ClassID int    `json:"classId"`
	Name    string `json:"name"`
	Class   string `json:"class"`
}

// DisplayName is "<spec> <class>", e.g. "Marksmanship Hunter".
func (s Spec) DisplayName() string {
	return s.Name + " " + s.Class
}

const (
	ClassWarrior     = 1
	ClassPaladin     = 2
	ClassHunter      = 3
	ClassRogue       = 4
	ClassPriest      = 5
	ClassDeathKnight = 6
	ClassShaman      = 7
	ClassMage        = 8
	ClassWarlock     = 9
	ClassMonk        = 10
	ClassDruid       = 11
	ClassDemonHunter = 12
	ClassEvoker      = 13
)

var classNames = map[int]string{
	ClassWarrior:     "Warrior",
	ClassPaladin:     "Paladin",
	ClassHunter:      "Hunter",
	ClassRogue:       "Rogue",
	ClassPriest:      "Priest",
	ClassDeathKnight: "Death Knight",
	ClassShaman:      "Shaman",
	ClassMage:        "Mage",
	ClassWarlock:     "Warlock",
	ClassMonk:        "Monk",
	ClassDruid:       "Druid",
	ClassDemonHunter: "Demon Hunter",
	ClassEvoker:      "Evoker",
}

type specRow struct {
	classID int
	name    string
}

// Specialization ids as used by the game client, including the starter
// ("Initial") specs of each class and the hunter pet specs.
var specRows = map[int]specRow{
	62:  {ClassMage, "Arcane"},
	63:  {ClassMage, "Fire"},
	64:  {ClassMage, "Frost"},
	65:  {ClassPaladin, "Holy"},
	66:  {ClassPaladin, "Protection"},
	70:  {ClassPaladin, "Retribution"},
	71:  {ClassWarrior, "Arms"},
	72:  {ClassWarrior, "Fury"},
	73:  {ClassWarrior, "Protection"},
	102: {ClassDruid, "Balance"},
	103: {ClassDruid, "Feral"},
	104: {ClassDruid, "Guardian"},
	105: {ClassDruid, "Restoration"},
	250: {ClassDeathKnight, "Blood"},
	251: {ClassDeathKnight, "Frost"},
	252: {ClassDeathKnight, "Unholy"},
	253: {ClassHunter, "Beast Mastery"},
	254: {ClassHunter, "Marksmanship"},
	255: {ClassHunter, "Survival"},
	256: {ClassPriest, "Discipline"},
	257: {ClassPriest, "Holy"},
	258: {ClassPriest, "Shadow"},
	259: {ClassRogue, "Assassination"},
	260: {ClassRogue, "Outlaw"},
	261: {ClassRogue, "Subtlety"},
	262: {ClassShaman, "Elemental"},
	263: {ClassShaman, "Enhancement"},
	264: {ClassShaman, "Restoration"},
	265: {ClassWarlock, "Affliction"},
	266: {ClassWarlock, "Demonology"},
	267: {ClassWarlock, "Destruction"},
	268: {ClassMonk, "Brewmaster"},
	269: {ClassMonk, "Windwalker"},
	270: {ClassMonk, "Mistweaver"},
	577: {ClassDemonHunter, "Havoc"},
	581: {ClassDemonHunter, "Vengeance"},
	1467: {ClassEvoker, "Devastation"},
	1468: {ClassEvoker, "Preservation"},
	1473: {ClassEvoker, "Augmentation"},

	1444: {ClassShaman, "Initial"},
	1446: {ClassWarrior, "Initial"},
	1447: {ClassDruid, "Initial"},
	1448: {ClassHunter, "Initial"},
	1449: {ClassMage, "Initial"},
	1450: {ClassMonk, "Initial"},
	1451: {ClassPaladin, "Initial"},
	1452: {ClassPriest, "Initial"},
	1453: {ClassRogue, "Initial"},
	1454: {ClassWarlock, "Initial"},
	1455: {ClassDeathKnight, "Initial"},
	1456: {ClassDemonHunter, "Initial"},
	1465: {ClassEvoker, "Initial"},

	74: {ClassHunter, "Ferocity"},
	79: {ClassHunter, "Cunning"},
	81: {ClassHunter, "Tenacity"},
}

// LookupSpec resolves a specialization id.
func LookupSpec(id int) (Spec, bool) {
	row, ok := specRows[id]
	if !ok {
		return Spec{}, false
	}
	return Spec{ID: id, ClassID: row.classID, Name: row.name, Class: classNames[row.classID]}, true
}

// SpecName returns the display name for id, or "" when id is unknown.
func SpecName(id int) string {
	s, ok := LookupSpec(id)
	if !ok {
		return ""
	}
	return s.DisplayName()
}

func ClassName(classID int) (string, bool) {
	name, ok := classNames[classID]
	return name, ok
}

// Specs returns the whole table ordered by class then spec id.
func Specs() []Spec {
	out := make([]Spec, 0, len(specRows))
	for id := range specRows {
		s, _ := LookupSpec(id)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClassID != out[j].ClassID {
			return out[i].ClassID < out[j].ClassID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func specLabel(id int) string {
	if name := SpecName(id); name != "" {
		return name
	}
	return "spec " + strconv.Itoa(id)
}
