package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whitesnakegang/ouroboros/oasmodel"
)

func TestFlatten_Primitives(t *testing.T) {
	props := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	props.Set("id", &oasmodel.Schema{Type: "integer"})
	props.Set("name", &oasmodel.Schema{Type: "string"})
	schemas := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	schemas.Set("User", &oasmodel.Schema{Type: "object", Properties: props})

	counts := Flatten("User", schemas)
	assert.Equal(t, TypeCounts{"id:integer": 1, "name:string": 1}, counts)
}

func TestFlatten_ArrayOfPrimitive(t *testing.T) {
	props := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	props.Set("tags", &oasmodel.Schema{Type: "array", Items: &oasmodel.Schema{Type: "string"}})
	schemas := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	schemas.Set("User", &oasmodel.Schema{Type: "object", Properties: props})

	counts := Flatten("User", schemas)
	assert.Equal(t, TypeCounts{"tags:array.string": 1}, counts)
}

func TestFlatten_ArrayOfReferencedSchema(t *testing.T) {
	props := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	props.Set("pets", &oasmodel.Schema{Type: "array", Items: &oasmodel.Schema{Ref: "#/components/schemas/Pet"}})
	schemas := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	schemas.Set("User", &oasmodel.Schema{Type: "object", Properties: props})
	schemas.Set("Pet", &oasmodel.Schema{Type: "object"})

	counts := Flatten("User", schemas)
	assert.Equal(t, TypeCounts{"pets:array.Pet": 1}, counts)
}

func TestFlatten_NestedObjectExpandsInline(t *testing.T) {
	addrProps := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	addrProps.Set("city", &oasmodel.Schema{Type: "string"})

	rootProps := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	rootProps.Set("address", &oasmodel.Schema{Type: "object", Properties: addrProps})

	schemas := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	schemas.Set("User", &oasmodel.Schema{Type: "object", Properties: rootProps})

	counts := Flatten("User", schemas)
	assert.Equal(t, TypeCounts{"address.city:string": 1}, counts)
}

func TestFlatten_CycleBreaksToOpaqueLeaf(t *testing.T) {
	nodeProps := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	nodeProps.Set("next", &oasmodel.Schema{Ref: "#/components/schemas/Node"})
	schemas := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	schemas.Set("Node", &oasmodel.Schema{Type: "object", Properties: nodeProps})

	counts := Flatten("Node", schemas)
	assert.Equal(t, TypeCounts{"next:Node": 1}, counts)
}

func TestFlatten_CommutativeAcrossDeclarationOrder(t *testing.T) {
	propsA := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	propsA.Set("id", &oasmodel.Schema{Type: "integer"})
	propsA.Set("name", &oasmodel.Schema{Type: "string"})

	propsB := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	propsB.Set("name", &oasmodel.Schema{Type: "string"})
	propsB.Set("id", &oasmodel.Schema{Type: "integer"})

	schemasA := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	schemasA.Set("User", &oasmodel.Schema{Type: "object", Properties: propsA})
	schemasB := oasmodel.NewOrderedMap[*oasmodel.Schema]()
	schemasB.Set("User", &oasmodel.Schema{Type: "object", Properties: propsB})

	assert.True(t, Equal(Flatten("User", schemasA), Flatten("User", schemasB)))
}

func TestFlatten_NotEqualWhenCountsDiffer(t *testing.T) {
	a := TypeCounts{"id:integer": 1}
	b := TypeCounts{"id:integer": 2}
	assert.False(t, Equal(a, b))
}
