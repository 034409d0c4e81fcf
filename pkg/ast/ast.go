package ast

type NodeType string

const (
	NodeProgram                 NodeType = "Program"
	NodeBlock                   NodeType = "Block"
	NodeVariableDeclaration     NodeType = "VariableDeclaration"
	NodeAssignment              NodeType = "Assignment"
	NodeFunctionDefinition      NodeType = "FunctionDefinition"
	NodeFunctionCall            NodeType = "FunctionCall"
	NodeIfStatement             NodeType = "IfStatement"
	NodeRepeatStatement         NodeType = "RepeatStatement"
	NodePrintStatement          NodeType = "PrintStatement"
	NodeGraphicsCommand         NodeType = "GraphicsCommand"
	NodeAudioCommand            NodeType = "AudioCommand"
	NodePolynomialDefinition    NodeType = "PolynomialDefinition"
	NodePolynomialShow          NodeType = "PolynomialShow"
	NodePolynomialPlot          NodeType = "PolynomialPlot"
	NodePolynomialOperation     NodeType = "PolynomialOperation"
	NodeBinaryExpression        NodeType = "BinaryExpression"
	NodeUnaryExpression         NodeType = "UnaryExpression"
	NodeParenthesizedExpression NodeType = "ParenthesizedExpression"
	NodeNumberLiteral           NodeType = "NumberLiteral"
	NodeTextLiteral             NodeType = "TextLiteral"
	NodeBooleanLiteral          NodeType = "BooleanLiteral"
	NodeIdentifier              NodeType = "Identifier"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Program is the root of one parsed Minicode source.
type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Block is an ordered statement sequence. It does not open a scope.
type Block struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

// Statements

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Name  string     `json:"name"`
	Value Expression `json:"value,omitempty"`
}

func NewVariableDeclaration(name string, value Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, Value: value}
}

type Assignment struct {
	nodeImpl
	statementMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewAssignment(name string, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Value: value}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	Name   string   `json:"name"`
	Params []string `json:"params"`
	Body   *Block   `json:"body"`
}

func NewFunctionDefinition(name string, params []string, body *Block) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Params: params, Body: body}
}

// FunctionCall appears both as a statement and inside expressions.
type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    string       `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee string, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      *Block     `json:"then"`
	Else      *Block     `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then *Block, elseBlock *Block) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: elseBlock}
}

type RepeatStatement struct {
	nodeImpl
	statementMarker

	Count Expression `json:"count"`
	Body  *Block     `json:"body"`
}

func NewRepeatStatement(count Expression, body *Block) *RepeatStatement {
	return &RepeatStatement{nodeImpl: newNodeImpl(NodeRepeatStatement), Count: count, Body: body}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewPrintStatement(value Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Value: value}
}

// GraphicsAction names one turtle command.
type GraphicsAction string

const (
	GraphicsMove    GraphicsAction = "move"
	GraphicsRotate  GraphicsAction = "rotate"
	GraphicsColor   GraphicsAction = "color"
	GraphicsPenUp   GraphicsAction = "penUp"
	GraphicsPenDown GraphicsAction = "penDown"
)

// GraphicsCommand carries an optional direction word and an optional argument
// (distance, degrees or colour depending on Action).
type GraphicsCommand struct {
	nodeImpl
	statementMarker

	Action    GraphicsAction `json:"action"`
	Direction string         `json:"direction,omitempty"`
	Argument  Expression     `json:"argument,omitempty"`
}

func NewGraphicsCommand(action GraphicsAction, direction string, argument Expression) *GraphicsCommand {
	return &GraphicsCommand{nodeImpl: newNodeImpl(NodeGraphicsCommand), Action: action, Direction: direction, Argument: argument}
}

type AudioCommand struct {
	nodeImpl
	statementMarker

	Note     string     `json:"note"`
	Duration Expression `json:"duration,omitempty"`
}

func NewAudioCommand(note string, duration Expression) *AudioCommand {
	return &AudioCommand{nodeImpl: newNodeImpl(NodeAudioCommand), Note: note, Duration: duration}
}

// PolynomialDefinition keeps the raw source text of the expression; the
// algebra engine parses it at run time.
type PolynomialDefinition struct {
	nodeImpl
	statementMarker

	Name   string `json:"name"`
	Source string `json:"source"`
}

func NewPolynomialDefinition(name, source string) *PolynomialDefinition {
	return &PolynomialDefinition{nodeImpl: newNodeImpl(NodePolynomialDefinition), Name: name, Source: source}
}

type PolynomialShow struct {
	nodeImpl
	statementMarker

	Name string `json:"name"`
}

func NewPolynomialShow(name string) *PolynomialShow {
	return &PolynomialShow{nodeImpl: newNodeImpl(NodePolynomialShow), Name: name}
}

type PolynomialPlot struct {
	nodeImpl
	statementMarker

	Name string `json:"name"`
}

func NewPolynomialPlot(name string) *PolynomialPlot {
	return &PolynomialPlot{nodeImpl: newNodeImpl(NodePolynomialPlot), Name: name}
}

type PolynomialOperator string

const (
	PolynomialSum        PolynomialOperator = "sum"
	PolynomialDifference PolynomialOperator = "difference"
	PolynomialProduct    PolynomialOperator = "product"
	PolynomialQuotient   PolynomialOperator = "quotient"
)

type PolynomialOperation struct {
	nodeImpl
	statementMarker

	Operator PolynomialOperator `json:"operator"`
	Left     string             `json:"left"`
	Right    string             `json:"right"`
}

func NewPolynomialOperation(op PolynomialOperator, left, right string) *PolynomialOperation {
	return &PolynomialOperation{nodeImpl: newNodeImpl(NodePolynomialOperation), Operator: op, Left: left, Right: right}
}

// Expressions

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type ParenthesizedExpression struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewParenthesizedExpression(inner Expression) *ParenthesizedExpression {
	return &ParenthesizedExpression{nodeImpl: newNodeImpl(NodeParenthesizedExpression), Expression: inner}
}

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

// TextLiteral keeps the lexeme exactly as scanned, quotes included.
type TextLiteral struct {
	nodeImpl
	expressionMarker

	Lexeme string `json:"lexeme"`
}

func NewTextLiteral(lexeme string) *TextLiteral {
	return &TextLiteral{nodeImpl: newNodeImpl(NodeTextLiteral), Lexeme: lexeme}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}
