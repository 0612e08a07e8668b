package application

// Prompt templates for the inference provider. Every prompt demands a bare
// JSON document matching the graph record wire shape; the validator repairs
// whatever the model leaves out anyway.

const PromptPseudocodeToCFG = `You are an expert in program analysis. Convert the following pseudocode into a control flow graph.

Return ONLY a JSON object with this structure:
{
  "nodes": [{"id": "node1", "type": "START|END|PROCESS|DECISION|LOOP|FUNCTION_CALL|RETURN", "label": "...", "next_nodes": ["node2"], "condition": "only for DECISION nodes, otherwise null"}],
  "edges": [{"from": "node1", "to": "node2", "label": "edge condition, empty if unconditional"}],
  "complexity": <cyclomatic complexity as integer>,
  "num_paths": <number of distinct paths through the graph>,
  "nesting_depth": <maximum nesting depth>
}

Rules:
- Exactly one START node and at least one END node.
- Every DECISION node has a condition and at least two outgoing edges labelled with the branch outcome.
- Node ids are "node1", "node2", ... in statement order.
- Do not wrap the JSON in markdown fences or add commentary.`

const PromptFlowchartToCFG = `You are an expert in program analysis. The attached image is a flowchart of an algorithm. Read every shape and arrow and convert the flowchart into a control flow graph.

Return ONLY a JSON object with this structure:
{
  "nodes": [{"id": "node1", "type": "START|END|PROCESS|DECISION|LOOP|FUNCTION_CALL|RETURN", "label": "...", "next_nodes": ["node2"], "condition": "only for DECISION nodes, otherwise null"}],
  "edges": [{"from": "node1", "to": "node2", "label": "arrow label, empty if none"}],
  "complexity": <cyclomatic complexity as integer>,
  "num_paths": <number of distinct paths through the graph>,
  "nesting_depth": <maximum nesting depth>
}

Rules:
- Ovals/rounded shapes map to START or END, rectangles to PROCESS, diamonds to DECISION.
- Preserve arrow labels (yes/no, true/false) as edge labels.
- Do not wrap the JSON in markdown fences or add commentary.`

const PromptAnalyzeProblem = `You are an expert in algorithm design. Analyze the following problem statement and extract its requirements.

Return ONLY a JSON object with this structure:
{
  "problem_type": "sorting|searching|graph|dynamic_programming|greedy|string|math|other",
  "inputs": ["description of each input"],
  "outputs": ["description of each output"],
  "constraints": ["explicit constraints from the statement"],
  "expected_structures": ["control structures a correct solution is expected to contain, e.g. loop over input, comparison decision"],
  "edge_cases": ["edge cases a correct solution must handle"]
}

Do not wrap the JSON in markdown fences or add commentary.`

const PromptCompareCFGs = `You are an expert in algorithm analysis. Two control flow graphs of candidate solutions to the same problem follow, together with the problem analysis and their structural metrics. Compare them and decide which solution is better.

Return ONLY a JSON object with this structure:
{
  "winner": "solution1|solution2|tie",
  "scores": {"solution1": <0-100>, "solution2": <0-100>},
  "breakdown": [{"criterion": "correctness|efficiency|simplicity|robustness", "solution1": <0-100>, "solution2": <0-100>, "reasoning": "..."}],
  "summary": "one paragraph verdict"
}

Judge structure, not style: completeness of the control flow against the problem analysis, cyclomatic complexity relative to the problem's inherent complexity, handling of edge cases visible in the graph.
Do not wrap the JSON in markdown fences or add commentary.`
