package entity

type Category struct {
	Base `bson:",inline"`
	Name string `bson:"name" json:"name"`
}
