// pkg/xmlpatch/apply_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test patch application semantics, including per-operation failure isolation

package xmlpatch_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/xmlpatch"
	"github.com/modfold/modfold/pkg/xmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, xml string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc
}

func applyTo(t *testing.T, docXML, patchXML string) *etree.Document {
	t.Helper()
	doc := parse(t, docXML)
	require.NoError(t, xmlpatch.Apply(doc, parse(t, patchXML), nil))
	return doc
}

const jobsXML = `<jobs>
  <job id="patrol" count="5">
    <orders><order type="patrol"/></orders>
  </job>
  <job id="trade" count="3"/>
</jobs>`

func TestApplyAddElement(t *testing.T) {
	doc := applyTo(t, jobsXML,
		`<diff><add sel="/jobs"><job id="mine" count="2"/></add></diff>`)

	kids := doc.Root().ChildElements()
	require.Len(t, kids, 3)
	assert.Equal(t, "mine", kids[2].SelectAttrValue("id", ""), "default pos appends")
}

func TestApplyAddPositions(t *testing.T) {
	doc := applyTo(t, jobsXML, `<diff>
  <add sel="/jobs" pos="prepend"><job id="first"/></add>
  <add sel="/jobs/job[@id='patrol']" pos="before"><job id="mid"/></add>
  <add sel="/jobs/job[@id='trade']" pos="after"><job id="last"/></add>
</diff>`)

	var ids []string
	for _, job := range doc.Root().ChildElements() {
		ids = append(ids, job.SelectAttrValue("id", ""))
	}
	assert.Equal(t, []string{"first", "mid", "patrol", "trade", "last"}, ids)
}

func TestApplyAddAttribute(t *testing.T) {
	doc := applyTo(t, jobsXML,
		`<diff><add sel="/jobs/job[@id='trade']" type="@priority">7</add></diff>`)

	trade := doc.Root().FindElement("./job[@id='trade']")
	require.NotNil(t, trade)
	assert.Equal(t, "7", trade.SelectAttrValue("priority", ""))
}

func TestApplyAddText(t *testing.T) {
	doc := applyTo(t, `<job><comment/></job>`,
		`<diff><add sel="/job/comment">night shift</add></diff>`)

	comment := doc.Root().SelectElement("comment")
	require.NotNil(t, comment)
	assert.Equal(t, "night shift", xmltree.Text(comment))
}

func TestApplyRemoveVariants(t *testing.T) {
	doc := applyTo(t, `<jobs note="old"><job id="a">text</job><job id="b"/></jobs>`, `<diff>
  <remove sel="/jobs/@note"/>
  <remove sel="/jobs/job[@id='a']/text()"/>
  <remove sel="/jobs/job[@id='b']"/>
</diff>`)

	root := doc.Root()
	assert.Nil(t, root.SelectAttr("note"))
	kids := root.ChildElements()
	require.Len(t, kids, 1)
	assert.Equal(t, "a", kids[0].SelectAttrValue("id", ""))
	assert.Empty(t, xmltree.Text(kids[0]))
}

func TestApplyReplaceVariants(t *testing.T) {
	doc := applyTo(t, `<jobs><job id="a" count="1">old</job></jobs>`, `<diff>
  <replace sel="/jobs/job[@id='a']/@count">9</replace>
  <replace sel="/jobs/job[@id='a']/text()">new</replace>
</diff>`)

	job := doc.Root().ChildElements()[0]
	assert.Equal(t, "9", job.SelectAttrValue("count", ""))
	assert.Equal(t, "new", xmltree.Text(job))

	doc = applyTo(t, `<jobs><job id="a"/><job id="b"/></jobs>`,
		`<diff><replace sel="/jobs/job[@id='a']"><job id="c" fresh="yes"/></replace></diff>`)
	kids := doc.Root().ChildElements()
	require.Len(t, kids, 2)
	assert.Equal(t, "c", kids[0].SelectAttrValue("id", ""), "replacement keeps the position")
	assert.Equal(t, "b", kids[1].SelectAttrValue("id", ""))
}

func TestApplyReplacesDocumentRoot(t *testing.T) {
	doc := applyTo(t, `<jobs><job id="a"/></jobs>`,
		`<diff><replace sel="/jobs"><tasks><task id="t"/></tasks></replace></diff>`)

	assert.Equal(t, "tasks", doc.Root().Tag)
	require.Len(t, doc.Root().ChildElements(), 1)
}

func TestApplySkipsFailingOpsAndContinues(t *testing.T) {
	// Zero matches, multiple matches, and an unevaluable selector are
	// each isolated to their own operation.
	doc := applyTo(t, jobsXML, `<diff>
  <remove sel="/jobs/job[@id='missing']"/>
  <replace sel="/jobs/job/@count">0</replace>
  <remove sel="/jobs/job[unbalanced"/>
  <add sel="/jobs"><job id="added"/></add>
</diff>`)

	kids := doc.Root().ChildElements()
	require.Len(t, kids, 3, "surviving ops applied")
	assert.Equal(t, "added", kids[2].SelectAttrValue("id", ""))
	assert.Equal(t, "5", kids[0].SelectAttrValue("count", ""),
		"two-match replace was skipped")
}

func TestApplyOpsSeeEarlierEdits(t *testing.T) {
	doc := applyTo(t, `<jobs/>`, `<diff>
  <add sel="/jobs"><job id="new"/></add>
  <add sel="/jobs/job[@id='new']" type="@count">4</add>
</diff>`)

	job := doc.Root().ChildElements()[0]
	assert.Equal(t, "4", job.SelectAttrValue("count", ""))
}

func TestApplyRemovedRootIsAnError(t *testing.T) {
	doc := parse(t, `<jobs><job id="a"/></jobs>`)
	err := xmlpatch.Apply(doc, parse(t, `<diff><remove sel="/jobs"/></diff>`), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatchOp))
	require.NotNil(t, doc.Root(), "original root is reattached")
	assert.Equal(t, "jobs", doc.Root().Tag)
}

func TestApplyRejectsNonDiffDocument(t *testing.T) {
	doc := parse(t, `<jobs/>`)
	err := xmlpatch.Apply(doc, parse(t, `<jobs><job/></jobs>`), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDocumentParse))
}

func TestApplyFillsInsertedNodes(t *testing.T) {
	ident := xmltree.NewIdentifier()
	doc := parse(t, `<jobs><job id="a"/></jobs>`)
	ident.Fill(doc.Root())

	require.NoError(t, xmlpatch.Apply(doc,
		parse(t, `<diff><add sel="/jobs"><job id="b"><orders/></job></add></diff>`), ident))

	kids := doc.Root().ChildElements()
	require.Len(t, kids, 2)
	assert.NotZero(t, ident.ID(kids[1]), "inserted element got an identity")
	assert.NotZero(t, ident.ID(kids[1].ChildElements()[0]))
}
