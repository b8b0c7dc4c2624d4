package memory_test

import (
	"reflect"
	"testing"

	"github.com/datastax/entity-filter/expr"
	"github.com/datastax/entity-filter/filter"
	"github.com/datastax/entity-filter/internal/testutil"
	"github.com/datastax/entity-filter/query"
	"github.com/datastax/entity-filter/query/memory"
	"github.com/datastax/entity-filter/types"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var orderType = reflect.TypeOf(&testutil.Order{})

func resolve(path string) expr.Path {
	p, err := filter.NewEngine(nil).Resolve(orderType, path, nil)
	Expect(err).ToNot(HaveOccurred())
	return p
}

func ids(q query.Queryable[*testutil.Order]) []int {
	orders, err := memory.ToSlice(q)
	Expect(err).ToNot(HaveOccurred())
	return testutil.OrderIds(orders)
}

var _ = Describe("Query", func() {
	var repository *testutil.Repository
	var source memory.Query[*testutil.Order]

	BeforeEach(func() {
		repository = testutil.NewRepository()
		source = memory.From(repository.Orders)
	})

	Describe("Where()", func() {
		It("Should keep the matching elements in source order", func() {
			q := source.Where(expr.Comparison{Target: resolve("Status"), Op: types.Equal, Value: 1})
			Expect(ids(q)).To(Equal([]int{1, 5, 6}))
		})

		It("Should apply every stage", func() {
			q := source.
				Where(expr.Comparison{Target: resolve("Status"), Op: types.Equal, Value: 1}).
				Where(expr.Comparison{Target: resolve("Price"), Op: types.GreaterThan, Value: 10})
			Expect(ids(q)).To(Equal([]int{5, 6}))
		})

		It("Should evaluate conjunctions", func() {
			q := source.Where(expr.And(
				expr.Comparison{Target: resolve("Customer.Id"), Op: types.Equal, Value: 1},
				expr.Comparison{Target: resolve("Price"), Op: types.LessThan, Value: 15},
			))
			Expect(ids(q)).To(Equal([]int{1}))
		})

		It("Should not change the source", func() {
			q := source.Where(expr.Comparison{Target: resolve("Status"), Op: types.Equal, Value: 42})
			Expect(ids(q)).To(BeEmpty())
			Expect(source.Plan()).To(BeEmpty())
			Expect(ids(source)).To(HaveLen(8))
		})

		It("Should report evaluation errors", func() {
			q := source.Where(expr.Comparison{Target: resolve("Price"), Op: types.Equal, Value: "ten"})
			_, err := memory.ToSlice(q)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("stage 0 (Where)"))
		})
	})

	Describe("OrderBy()", func() {
		It("Should sort ascending and descending", func() {
			Expect(ids(source.OrderBy(resolve("Price"), types.Ascending))).To(Equal([]int{3, 7, 1, 6, 5, 4, 2, 8}))
			Expect(ids(source.OrderBy(resolve("Price"), types.Descending))).To(Equal([]int{8, 2, 4, 5, 6, 1, 7, 3}))
		})

		It("Should keep the source order of equal keys", func() {
			Expect(ids(source.OrderBy(resolve("CustomerId"), types.Descending))).To(Equal([]int{8, 7, 4, 5, 6, 3, 1, 2}))
		})

		It("Should order nil values first", func() {
			Expect(ids(source.OrderBy(resolve("Description"), types.Ascending))).To(Equal([]int{8, 3, 4, 1, 7, 5, 2, 6}))
		})

		It("Should leave the source slice untouched", func() {
			_ = ids(source.OrderBy(resolve("Price"), types.Descending))
			Expect(testutil.OrderIds(repository.Orders)).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8}))
		})
	})

	Describe("Skip() and Take()", func() {
		It("Should page through the elements", func() {
			Expect(ids(source.Skip(2).Take(3))).To(Equal([]int{3, 4, 5}))
			Expect(ids(source.Skip(6).Take(3))).To(Equal([]int{7, 8}))
		})

		It("Should clamp out of range counts", func() {
			Expect(ids(source.Skip(20))).To(BeEmpty())
			Expect(ids(source.Skip(-1).Take(2))).To(Equal([]int{1, 2}))
			Expect(ids(source.Take(-1))).To(BeEmpty())
		})

		It("Should run stages in the order they were added", func() {
			q := source.Take(4).OrderBy(resolve("Price"), types.Descending)
			Expect(ids(q)).To(Equal([]int{2, 4, 1, 3}))
		})
	})

	Describe("ToSlice()", func() {
		It("Should reject queries from another host", func() {
			_, err := memory.ToSlice[*testutil.Order](nil)
			Expect(err).To(Equal(memory.ErrNotMemoryQuery))
		})
	})

	It("Should report the element type", func() {
		Expect(source.ElementType()).To(Equal(orderType))
	})
})

func TestMemory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Memory query test suite")
}
